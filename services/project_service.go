package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

// CreateProjectInput describes a new project
type CreateProjectInput struct {
	ProjectName string `json:"project_name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateProjectInput replaces a project's editable fields. An empty Status
// keeps the current status.
type UpdateProjectInput struct {
	ProjectName string               `json:"project_name" validate:"required,max=255"`
	Description string               `json:"description" validate:"max=2000"`
	Status      models.ProjectStatus `json:"status"`
}

// ProjectService manages projects
type ProjectService struct {
	projects repositories.ProjectRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(projects repositories.ProjectRepository, users repositories.UserRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		logger:   logger,
	}
}

// Create stores a new ACTIVE project owned by createdBy
func (s *ProjectService) Create(ctx context.Context, createdBy int64, in CreateProjectInput) (*models.Project, error) {
	project := models.NewProject(in.ProjectName, in.Description, createdBy)
	if err := s.projects.Create(ctx, project); err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return nil, ErrUserNotFound
		}
		return nil, WrapUnavailable("failed to create project", err)
	}

	s.logger.Info("project created",
		zap.Int64("project_id", project.ID),
		zap.Int64("created_by", createdBy),
	)
	return project, nil
}

// Get retrieves a project by ID
func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore("failed to get project", err, ErrProjectNotFound)
	}
	return project, nil
}

// List retrieves all projects
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, WrapUnavailable("failed to list projects", err)
	}
	return projects, nil
}

// ListByStatus retrieves the projects in the given status
func (s *ProjectService) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]*models.Project, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	projects, err := s.projects.ListByStatus(ctx, status)
	if err != nil {
		return nil, WrapUnavailable("failed to list projects", err)
	}
	return projects, nil
}

// ListByCreator retrieves the projects created by a user
func (s *ProjectService) ListByCreator(ctx context.Context, createdBy int64) ([]*models.Project, error) {
	exists, err := s.users.ExistsByID(ctx, createdBy)
	if err != nil {
		return nil, WrapUnavailable("failed to check user", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	projects, err := s.projects.ListByCreator(ctx, createdBy)
	if err != nil {
		return nil, WrapUnavailable("failed to list projects", err)
	}
	return projects, nil
}

// Update applies in to an existing project
func (s *ProjectService) Update(ctx context.Context, id int64, in UpdateProjectInput) (*models.Project, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore("failed to get project", err, ErrProjectNotFound)
	}

	project.ProjectName = in.ProjectName
	project.Description = in.Description
	if in.Status != "" {
		project.Status = in.Status
	}
	project.UpdatedAt = time.Now()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fromStore("failed to update project", err, ErrProjectNotFound)
	}

	s.logger.Info("project updated",
		zap.Int64("project_id", project.ID),
		zap.String("status", string(project.Status)),
	)
	return project, nil
}

// Delete removes a project and its assignments
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fromStore("failed to delete project", err, ErrProjectNotFound)
	}

	s.logger.Info("project deleted", zap.Int64("project_id", id))
	return nil
}
