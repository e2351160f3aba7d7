package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/repositories"
)

// Principal is the authenticated identity attached to a request.
// It is derived per request and never persisted.
type Principal struct {
	ID    int64           `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// PrincipalFromUser builds a Principal from a stored user.
func PrincipalFromUser(u *models.User) *Principal {
	return &Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// CredentialStore is the read side of the user store needed by the auth core.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Resolver turns a token subject into a Principal.
type Resolver struct {
	store CredentialStore
}

// NewResolver creates a new Resolver
func NewResolver(store CredentialStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up the user named by email. Results are not cached.
func (r *Resolver) Resolve(ctx context.Context, email string) (*Principal, error) {
	if email == "" {
		return nil, ErrUnknownSubject
	}

	user, err := r.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return PrincipalFromUser(user), nil
}
