package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/services"
	"github.com/upb/project-manager/utils"
)

// AssignmentService defines the assignment operations the handler needs
type AssignmentService interface {
	Assign(ctx context.Context, in services.AssignInput) (*models.ProjectAssignment, error)
	ListByProject(ctx context.Context, projectID int64) ([]*models.ProjectAssignment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ProjectAssignment, error)
}

// AssignmentHandler handles project assignment HTTP requests
type AssignmentHandler struct {
	assignments AssignmentService
	logger      *zap.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignments AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		logger:      logger,
	}
}

// HandleAssign handles POST /api/projects/admin/project-assignments
func (h *AssignmentHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req services.AssignInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	assignment, err := h.assignments.Assign(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, assignment)
}

// HandleListByProject handles GET .../project-assignments/project/{projectId}
func (h *AssignmentHandler) HandleListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	assignments, err := h.assignments.ListByProject(r.Context(), projectID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, assignments)
}

// HandleListByUser handles GET .../project-assignments/user/{userId}
func (h *AssignmentHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	assignments, err := h.assignments.ListByUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, assignments)
}
