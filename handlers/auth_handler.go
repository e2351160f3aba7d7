package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/middleware"
	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/services"
	"github.com/upb/project-manager/utils"
)

// Registrar creates self-service accounts
type Registrar interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// TokenIssuer exchanges credentials for a token
type TokenIssuer interface {
	Login(ctx context.Context, in services.LoginInput) (*auth.Token, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	users  Registrar
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users Registrar, issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

// HandleRegister handles POST /api/auth/users/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse{
		Data:    user,
		Message: "User registered successfully",
	})
}

// HandleLogin handles POST /api/auth/users/login. The token is the plain
// text response body.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.logger.Info("malformed login request",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		_ = utils.WriteUnauthorized(w, services.ErrInvalidCredentials.Message)
		return
	}

	token, err := h.issuer.Login(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	_ = utils.WriteText(w, http.StatusOK, token.Value)
}

// HandleTest handles GET /api/auth/users/test
func (h *AuthHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteText(w, http.StatusOK, "API is working")
}
