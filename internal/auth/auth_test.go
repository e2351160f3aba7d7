package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/upb/project-manager/models"
)

// mockCredentialStore is a mock implementation of CredentialStore
type mockCredentialStore struct {
	mock.Mock
}

func (m *mockCredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
