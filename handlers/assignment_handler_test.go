package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/services"
)

func assignmentRouter(h *AssignmentHandler) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/projects/admin/project-assignments", func(r chi.Router) {
		r.Post("/", h.HandleAssign)
		r.Get("/project/{projectId}", h.HandleListByProject)
		r.Get("/user/{userId}", h.HandleListByUser)
	})
	return r
}

func TestAssignmentHandler_Assign(t *testing.T) {
	in := services.AssignInput{ProjectID: 3, UserID: 5}
	body := `{"project_id":3,"user_id":5}`

	tests := []struct {
		name   string
		result *models.ProjectAssignment
		err    error
		status int
	}{
		{"assigned", &models.ProjectAssignment{ID: 1, ProjectID: 3, UserID: 5}, nil, http.StatusCreated},
		{"already assigned", nil, services.ErrDuplicateAssignment, http.StatusBadRequest},
		{"missing project", nil, services.ErrProjectNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments := new(MockAssignmentService)
			if tt.result != nil {
				assignments.On("Assign", mock.Anything, in).Return(tt.result, nil)
			} else {
				assignments.On("Assign", mock.Anything, in).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/projects/admin/project-assignments", strings.NewReader(body))
			assignmentRouter(NewAssignmentHandler(assignments, zap.NewNop())).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAssignmentHandler_AssignValidatesIDs(t *testing.T) {
	assignments := new(MockAssignmentService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/admin/project-assignments", strings.NewReader(`{"project_id":0,"user_id":5}`))
	assignmentRouter(NewAssignmentHandler(assignments, zap.NewNop())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assignments.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
}

func TestAssignmentHandler_Lists(t *testing.T) {
	assignments := new(MockAssignmentService)
	assignments.On("ListByProject", mock.Anything, int64(3)).Return([]*models.ProjectAssignment{{ProjectID: 3, UserID: 5}}, nil)
	assignments.On("ListByUser", mock.Anything, int64(5)).Return(nil, services.ErrUserNotFound)
	router := assignmentRouter(NewAssignmentHandler(assignments, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/admin/project-assignments/project/3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":5`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/admin/project-assignments/user/5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
