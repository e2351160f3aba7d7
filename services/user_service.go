package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

// RegisterInput is a self-service sign-up.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CreateUserInput is an administrator-created account.
type CreateUserInput struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// UpdateUserInput changes an account. Empty fields keep their current value.
// A non-empty Password is re-hashed.
type UpdateUserInput struct {
	Name     string          `json:"name" validate:"omitempty,max=255"`
	Email    string          `json:"email" validate:"omitempty,email,max=255"`
	Password string          `json:"password" validate:"omitempty,min=8,max=72"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// UserService manages user accounts
type UserService struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(users repositories.UserRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a USER account. Self-registration never grants ADMIN.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in.Name, in.Email, in.Password, models.RoleUser)
}

// Create creates an account with the requested role, USER by default.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return s.create(ctx, in.Name, in.Email, in.Password, role)
}

func (s *UserService) create(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, WrapUnavailable("failed to check email", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(name, email, hash, role)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, WrapUnavailable("failed to create user", err)
	}

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore("failed to get user", err, ErrUserNotFound)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fromStore("failed to get user", err, ErrUserNotFound)
	}
	return user, nil
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, WrapUnavailable("failed to list users", err)
	}
	return users, nil
}

// Update applies in to the user. The role is kept when in.Role is empty.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore("failed to get user", err, ErrUserNotFound)
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" && in.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, WrapUnavailable("failed to check email", err)
		}
		if exists {
			return nil, ErrDuplicateEmail
		}
		user.Email = in.Email
	}
	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fromStore("failed to update user", err, ErrUserNotFound)
	}

	s.logger.Info("user updated", zap.Int64("user_id", user.ID))
	return user, nil
}

// Delete removes a user. Deleting a missing user is ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return ErrUserInUse
		}
		return fromStore("failed to delete user", err, ErrUserNotFound)
	}

	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

// EnsureAdmin creates an ADMIN account for email unless one with that email
// already exists. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, WrapUnavailable("failed to check email", err)
	}
	if exists {
		return false, nil
	}

	if _, err := s.create(ctx, "Administrator", email, password, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", WrapInternal("failed to hash password", err)
	}
	return hash, nil
}
