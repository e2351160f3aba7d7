package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

// AssignInput assigns a user to a project
type AssignInput struct {
	ProjectID int64 `json:"project_id" validate:"required,gt=0"`
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
}

// AssignmentService manages project assignments
type AssignmentService struct {
	txMgr       repositories.TransactionManager
	assignments repositories.ProjectAssignmentRepository
	projects    repositories.ProjectRepository
	users       repositories.UserRepository
	logger      *zap.Logger
}

// NewAssignmentService creates a new AssignmentService instance
func NewAssignmentService(txMgr repositories.TransactionManager, repos *repositories.Repositories, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		txMgr:       txMgr,
		assignments: repos.ProjectAssignments,
		projects:    repos.Projects,
		users:       repos.Users,
		logger:      logger,
	}
}

// Assign links a user to a project. The project and user must exist and
// the pair must not already be assigned.
func (s *AssignmentService) Assign(ctx context.Context, in AssignInput) (*models.ProjectAssignment, error) {
	assignment, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.ProjectAssignment, error) {
		if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
			return nil, fromStore("failed to get project", err, ErrProjectNotFound)
		}

		exists, err := s.users.ExistsByID(ctx, in.UserID)
		if err != nil {
			return nil, WrapUnavailable("failed to check user", err)
		}
		if !exists {
			return nil, ErrUserNotFound
		}

		assigned, err := s.assignments.Exists(ctx, in.ProjectID, in.UserID)
		if err != nil {
			return nil, WrapUnavailable("failed to check assignment", err)
		}
		if assigned {
			return nil, ErrDuplicateAssignment
		}

		assignment := models.NewProjectAssignment(in.ProjectID, in.UserID)
		if err := s.assignments.Create(ctx, assignment); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return nil, ErrDuplicateAssignment
			}
			return nil, WrapUnavailable("failed to create assignment", err)
		}
		return assignment, nil
	})
	if err != nil {
		if GetErrorType(err) == "" {
			return nil, WrapUnavailable("failed to assign user", err)
		}
		return nil, err
	}

	s.logger.Info("user assigned to project",
		zap.Int64("project_id", assignment.ProjectID),
		zap.Int64("user_id", assignment.UserID),
	)
	return assignment, nil
}

// ListByProject retrieves the assignments of a project
func (s *AssignmentService) ListByProject(ctx context.Context, projectID int64) ([]*models.ProjectAssignment, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fromStore("failed to get project", err, ErrProjectNotFound)
	}
	assignments, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, WrapUnavailable("failed to list assignments", err)
	}
	return assignments, nil
}

// ListByUser retrieves the assignments of a user
func (s *AssignmentService) ListByUser(ctx context.Context, userID int64) ([]*models.ProjectAssignment, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, WrapUnavailable("failed to check user", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	assignments, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapUnavailable("failed to list assignments", err)
	}
	return assignments, nil
}
