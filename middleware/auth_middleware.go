package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/internal/observability"
	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/utils"
)

// authFailureMessage is the only body a 401 from this middleware carries.
const authFailureMessage = "Authentication required"

// AuthMiddleware authenticates bearer tokens and applies the route policy
type AuthMiddleware struct {
	codec    *auth.TokenCodec
	resolver *auth.Resolver
	gate     *auth.Gate
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. metrics may be nil.
func NewAuthMiddleware(codec *auth.TokenCodec, resolver *auth.Resolver, gate *auth.Gate, metrics *observability.Metrics, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		codec:    codec,
		resolver: resolver,
		gate:     gate,
		metrics:  metrics,
		logger:   logger,
	}
}

// Authenticate runs before routing on every request.
//
// Public routes pass through without looking at the token. On any other
// route a missing, malformed or expired token, or a subject that no longer
// exists, is a 401 with a fixed message. A store failure while resolving the
// subject is a 503. A principal whose role the route does not admit is a 403.
// Otherwise the principal and the token claims are stored in the request
// context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		route := auth.Route{Method: r.Method, Path: routePath(r)}

		if decision := m.gate.Authorize(route, nil); decision.Allowed {
			m.metrics.RecordAuthDecision(observability.OutcomePublic)
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			m.unauthenticated(w, r, route, "missing_token", auth.ErrUnauthenticated)
			return
		}

		claims, err := m.codec.Parse(token)
		if err != nil {
			m.unauthenticated(w, r, route, "invalid_token", err)
			return
		}

		principal, err := m.resolver.Resolve(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, auth.ErrServiceUnavailable) {
				m.logger.Error("principal resolution failed",
					zap.String("request_id", GetRequestIDFromContext(ctx)),
					zap.String("path", route.Path),
					zap.String("state", "store_unavailable"),
					zap.Error(err))
				m.metrics.RecordAuthDecision(observability.OutcomeUnavailable)
				_ = utils.WriteServiceUnavailable(w, "")
				return
			}
			m.unauthenticated(w, r, route, "unknown_subject", err)
			return
		}

		decision := m.gate.Authorize(route, principal)
		if !decision.Allowed {
			m.logger.Warn("request forbidden",
				zap.String("request_id", GetRequestIDFromContext(ctx)),
				zap.String("path", route.Path),
				zap.String("method", route.Method),
				zap.String("state", "forbidden"),
				zap.String("policy", decision.Policy.Name),
				zap.Int64("user_id", principal.ID),
				zap.String("role", string(principal.Role)))
			m.metrics.RecordAuthDecision(observability.OutcomeForbidden)
			_ = utils.WriteForbidden(w, "")
			return
		}

		m.logger.Debug("request authorized",
			zap.String("request_id", GetRequestIDFromContext(ctx)),
			zap.String("path", route.Path),
			zap.String("policy", decision.Policy.Name),
			zap.Int64("user_id", principal.ID))
		m.metrics.RecordAuthDecision(observability.OutcomeAllowed)

		ctx = WithPrincipal(ctx, principal)
		ctx = WithTokenClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) unauthenticated(w http.ResponseWriter, r *http.Request, route auth.Route, state string, reason error) {
	m.logger.Info("request not authenticated",
		zap.String("request_id", GetRequestIDFromContext(r.Context())),
		zap.String("path", route.Path),
		zap.String("method", route.Method),
		zap.String("state", state),
		zap.Error(reason))
	m.metrics.RecordAuthDecision(observability.OutcomeUnauthenticated)
	_ = utils.WriteUnauthorized(w, authFailureMessage)
}

// RequireRole is a middleware that requires one of the given roles. It
// guards route groups behind Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := auth.RoleSet(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			principal := GetPrincipalFromContext(ctx)
			if principal == nil {
				m.logger.Error("principal not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, authFailureMessage)
				return
			}

			if !allowed.Contains(principal.Role) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.Any("required_roles", roles),
					zap.String("role", string(principal.Role)))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// routePath returns the path chi routes on.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

// extractBearerToken extracts the Bearer token from the Authorization header.
// Tokens are never read from cookies or query parameters.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
