package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

// ProjectAssignmentRepository implements the repositories.ProjectAssignmentRepository interface
type ProjectAssignmentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProjectAssignmentRepository creates a new project assignment repository
func NewProjectAssignmentRepository(db *DB, logger *zap.Logger) repositories.ProjectAssignmentRepository {
	return &ProjectAssignmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an assignment and sets its ID
func (r *ProjectAssignmentRepository) Create(ctx context.Context, assignment *models.ProjectAssignment) error {
	query := `
		INSERT INTO project_assignments (project_id, user_id, assigned_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		assignment.ProjectID,
		assignment.UserID,
		assignment.AssignedAt,
	).Scan(&assignment.ID)
	if err != nil {
		return mapError("failed to create project assignment", err)
	}

	r.logger.Debug("project assignment created",
		zap.Int64("project_id", assignment.ProjectID),
		zap.Int64("user_id", assignment.UserID),
	)
	return nil
}

// ListByProject retrieves the assignments of a project
func (r *ProjectAssignmentRepository) ListByProject(ctx context.Context, projectID int64) ([]*models.ProjectAssignment, error) {
	return r.list(ctx, `
		SELECT id, project_id, user_id, assigned_at
		FROM project_assignments
		WHERE project_id = $1
		ORDER BY assigned_at, id
	`, projectID)
}

// ListByUser retrieves the assignments of a user
func (r *ProjectAssignmentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ProjectAssignment, error) {
	return r.list(ctx, `
		SELECT id, project_id, user_id, assigned_at
		FROM project_assignments
		WHERE user_id = $1
		ORDER BY assigned_at, id
	`, userID)
}

func (r *ProjectAssignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.ProjectAssignment, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*models.ProjectAssignment{}
	for rows.Next() {
		a := &models.ProjectAssignment{}
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project assignment rows: %w", err)
	}

	return assignments, nil
}

// Exists reports whether the user is already assigned to the project
func (r *ProjectAssignmentRepository) Exists(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_assignments WHERE project_id = $1 AND user_id = $2)`,
		projectID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project assignment: %w", err)
	}
	return exists, nil
}
