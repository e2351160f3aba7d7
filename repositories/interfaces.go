package repositories

import (
	"context"

	"github.com/upb/project-manager/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns a context that routes repository calls through the transaction
	Context() context.Context
}

// UserRepository handles user data operations. Lookups return ErrNotFound
// when no row matches.
type UserRepository interface {
	// FindByEmail retrieves a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByID reports whether a user with the ID exists
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create inserts a new user and sets its ID. Returns ErrDuplicate on a taken email.
	Create(ctx context.Context, user *models.User) error

	// Update saves an existing user
	Update(ctx context.Context, user *models.User) error

	// DeleteByID deletes a user
	DeleteByID(ctx context.Context, id int64) error

	// List retrieves all users
	List(ctx context.Context) ([]*models.User, error)
}

// ProjectRepository handles project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus) ([]*models.Project, error)
	ListByCreator(ctx context.Context, createdBy int64) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectAssignmentRepository handles project assignment data operations
type ProjectAssignmentRepository interface {
	// Create inserts an assignment. Returns ErrDuplicate when the pair already exists.
	Create(ctx context.Context, assignment *models.ProjectAssignment) error

	// ListByProject retrieves the assignments of a project
	ListByProject(ctx context.Context, projectID int64) ([]*models.ProjectAssignment, error)

	// ListByUser retrieves the assignments of a user
	ListByUser(ctx context.Context, userID int64) ([]*models.ProjectAssignment, error)

	// Exists reports whether the user is already assigned to the project
	Exists(ctx context.Context, projectID, userID int64) (bool, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users              UserRepository
	Projects           ProjectRepository
	ProjectAssignments ProjectAssignmentRepository
}
