package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/middleware"
	"github.com/upb/project-manager/utils"
)

// pathID parses the named chi URL parameter. It writes a 400 and returns
// false when the parameter is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name), name)
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return 0, false
	}
	return id, true
}

// decode reads and validates a JSON body. It writes a 400 and returns
// false on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}, logger *zap.Logger) bool {
	if err := utils.DecodeJSON(r, v); err != nil {
		logger.Warn("request validation failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}

// requirePrincipal returns the authenticated principal. It writes a 401 and
// returns nil when the route ran without one.
func requirePrincipal(w http.ResponseWriter, r *http.Request, logger *zap.Logger) *auth.Principal {
	principal := middleware.GetPrincipalFromContext(r.Context())
	if principal == nil {
		logger.Error("principal not found in context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path))
		_ = utils.WriteUnauthorized(w, "")
		return nil
	}
	return principal
}
