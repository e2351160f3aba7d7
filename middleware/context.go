package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/upb/project-manager/internal/auth"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey contextKey = "principal"

	// TokenClaimsKey is the context key for the verified token claims
	TokenClaimsKey contextKey = "token_claims"
)

// GetRequestIDFromContext retrieves the request ID from context. It falls
// back to the ID set by chi's RequestID middleware.
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return chimw.GetReqID(ctx)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetPrincipalFromContext retrieves the authenticated principal, or nil on
// public routes.
func GetPrincipalFromContext(ctx context.Context) *auth.Principal {
	if val := ctx.Value(PrincipalKey); val != nil {
		if p, ok := val.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

// WithPrincipal adds the authenticated principal to the context
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetTokenClaimsFromContext retrieves the claims of the token that
// authenticated the request
func GetTokenClaimsFromContext(ctx context.Context) *auth.TokenClaims {
	if val := ctx.Value(TokenClaimsKey); val != nil {
		if claims, ok := val.(*auth.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// WithTokenClaims adds verified token claims to the context
func WithTokenClaims(ctx context.Context, claims *auth.TokenClaims) context.Context {
	return context.WithValue(ctx, TokenClaimsKey, claims)
}
