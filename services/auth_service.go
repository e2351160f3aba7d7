package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/upb/project-manager/internal/auth"
)

// LoginInput carries login credentials
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService exchanges credentials for bearer tokens
type AuthService struct {
	verifier *auth.Verifier
	codec    *auth.TokenCodec
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(verifier *auth.Verifier, codec *auth.TokenCodec, logger *zap.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		codec:    codec,
		logger:   logger,
	}
}

// Login verifies the credentials and issues a token. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*auth.Token, error) {
	principal, err := s.verifier.Verify(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrServiceUnavailable) {
			s.logger.Error("credential store unavailable during login", zap.Error(err))
			return nil, WrapUnavailable("failed to verify credentials", err)
		}
		s.logger.Info("login rejected", zap.String("reason", err.Error()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(principal)
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}

	s.logger.Info("token issued",
		zap.Int64("user_id", principal.ID),
		zap.String("token_id", token.ID),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return token, nil
}
