package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/project-manager/repositories"
)

// Verifier checks an email and password pair against the credential store.
type Verifier struct {
	store  CredentialStore
	hasher *PasswordHasher
}

// NewVerifier creates a new Verifier
func NewVerifier(store CredentialStore, hasher *PasswordHasher) *Verifier {
	return &Verifier{store: store, hasher: hasher}
}

// Verify returns the Principal for a matching email and password.
//
// An unknown email and a wrong password both return ErrInvalidCredentials,
// and both perform one bcrypt comparison. Store failures return
// ErrServiceUnavailable.
func (v *Verifier) Verify(ctx context.Context, email, password string) (*Principal, error) {
	user, err := v.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			v.hasher.compareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if !v.hasher.Compare(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return PrincipalFromUser(user), nil
}
