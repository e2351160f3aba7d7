package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/services"
	"github.com/upb/project-manager/utils"
)

// ProjectService defines the project operations the handler needs
type ProjectService interface {
	Create(ctx context.Context, createdBy int64, in services.CreateProjectInput) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus) ([]*models.Project, error)
	ListByCreator(ctx context.Context, createdBy int64) ([]*models.Project, error)
	Update(ctx context.Context, id int64, in services.UpdateProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projects ProjectService
	logger   *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		logger:   logger,
	}
}

// HandleCreate handles POST /api/projects. The creator is the caller.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal := requirePrincipal(w, r, h.logger)
	if principal == nil {
		return
	}

	var req services.CreateProjectInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	project, err := h.projects.Create(r.Context(), principal.ID, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, project)
}

// HandleList handles GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, projects)
}

// HandleGet handles GET /api/projects/{id}
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, project)
}

// HandleListByStatus handles GET /api/projects/status/{status}
func (h *ProjectHandler) HandleListByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.ProjectStatus(chi.URLParam(r, "status"))

	projects, err := h.projects.ListByStatus(r.Context(), status)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, projects)
}

// HandleListByCreator handles GET /api/projects/creator/{createdBy}
func (h *ProjectHandler) HandleListByCreator(w http.ResponseWriter, r *http.Request) {
	createdBy, ok := pathID(w, r, "createdBy")
	if !ok {
		return
	}

	projects, err := h.projects.ListByCreator(r.Context(), createdBy)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, projects)
}

// HandleUpdate handles PUT /api/projects/{id}
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	project, err := h.projects.Update(r.Context(), id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, project)
}

// HandleDelete handles DELETE /api/projects/{id}
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	utils.WriteNoContent(w)
}
