package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/upb/project-manager/middleware"
	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/services"
	"github.com/upb/project-manager/utils"
)

// UserService defines the user operations the handler needs
type UserService interface {
	Create(ctx context.Context, in services.CreateUserInput) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, in services.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// TokenDetails describes the token that authenticated the request
type TokenDetails struct {
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id,omitempty"`
}

// TokenUserResponse is the response body for GET /api/auth/users/me/token
type TokenUserResponse struct {
	User  *models.User `json:"user"`
	Token TokenDetails `json:"token"`
}

// UserHandler handles user administration and the current user
type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleList handles GET /api/auth/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, users)
}

// HandleCreate handles POST /api/auth/users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req services.CreateUserInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	user, err := h.users.Create(r.Context(), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, user)
}

// HandleGet handles GET /api/auth/users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleUpdate handles PUT /api/auth/users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateUserInput
	if !decode(w, r, &req, h.logger) {
		return
	}

	user, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleDelete handles DELETE /api/auth/users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, "User deleted successfully")
}

// HandleMe handles GET /api/auth/users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal := requirePrincipal(w, r, h.logger)
	if principal == nil {
		return
	}

	user, err := h.users.Get(r.Context(), principal.ID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// HandleMeToken handles GET /api/auth/users/me/token
func (h *UserHandler) HandleMeToken(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetTokenClaimsFromContext(r.Context())
	if claims == nil {
		h.logger.Error("token claims not found in context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), claims.Subject)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, TokenUserResponse{
		User: user,
		Token: TokenDetails{
			Subject:   claims.Subject,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
			ID:        claims.ID,
		},
	})
}
