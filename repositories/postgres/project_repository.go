package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

const projectColumns = `id, project_name, description, status, created_by, created_at, updated_at`

// ProjectRepository implements the repositories.ProjectRepository interface
type ProjectRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB, logger *zap.Logger) repositories.ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ID,
		&project.ProjectName,
		&project.Description,
		&project.Status,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Create inserts a new project and sets its ID
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (project_name, description, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		project.ProjectName,
		project.Description,
		project.Status,
		project.CreatedBy,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID)
	if err != nil {
		return mapError("failed to create project", err)
	}

	r.logger.Debug("project created", zap.Int64("id", project.ID), zap.Int64("created_by", project.CreatedBy))
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("failed to get project", err)
	}
	return project, nil
}

// List retrieves all projects
func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
}

// ListByStatus retrieves projects with the given status
func (r *ProjectRepository) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]*models.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE status = $1 ORDER BY id`, status)
}

// ListByCreator retrieves projects created by a user
func (r *ProjectRepository) ListByCreator(ctx context.Context, createdBy int64) ([]*models.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE created_by = $1 ORDER BY id`, createdBy)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Project, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update saves an existing project. The creator never changes.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET project_name = $2,
		    description = $3,
		    status = $4,
		    updated_at = $5
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		project.ID,
		project.ProjectName,
		project.Description,
		project.Status,
		project.UpdatedAt,
	)
	if err != nil {
		return mapError("failed to update project", err)
	}
	if err := checkAffected("failed to update project", result); err != nil {
		return err
	}

	r.logger.Debug("project updated", zap.Int64("id", project.ID))
	return nil
}

// Delete deletes a project and, by cascade, its assignments
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError("failed to delete project", err)
	}
	if err := checkAffected("failed to delete project", result); err != nil {
		return err
	}

	r.logger.Debug("project deleted", zap.Int64("id", id))
	return nil
}
