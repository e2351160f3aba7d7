package app

import (
	"net/http"

	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/models"
)

// DefaultRoutePolicies returns the built-in route table. Order matters:
// the first matching entry decides, so narrower patterns come first.
func DefaultRoutePolicies() []auth.RoutePolicy {
	anyUser := auth.RoleSet(models.RoleUser, models.RoleAdmin)
	adminOnly := auth.RoleSet(models.RoleAdmin)

	return []auth.RoutePolicy{
		// Probes and scraping
		{Name: "health", Pattern: "/healthz", Methods: []string{http.MethodGet}, Public: true},
		{Name: "readiness", Pattern: "/readyz", Methods: []string{http.MethodGet}, Public: true},
		{Name: "metrics", Pattern: "/metrics", Methods: []string{http.MethodGet}, Public: true},

		// Account endpoints
		{Name: "register", Pattern: "/api/auth/users/register", Methods: []string{http.MethodPost}, Public: true},
		{Name: "login", Pattern: "/api/auth/users/login", Methods: []string{http.MethodPost}, Public: true},
		{Name: "liveness", Pattern: "/api/auth/users/test", Methods: []string{http.MethodGet}, Public: true},
		{Name: "current-user", Pattern: "/api/auth/users/me/**", Roles: anyUser},
		{Name: "user-admin", Pattern: "/api/auth/users/**", Roles: adminOnly},

		// Projects
		{Name: "project-admin", Pattern: "/api/projects/admin/**", Roles: adminOnly},
		{Name: "project-read", Pattern: "/api/projects/**", Methods: []string{http.MethodGet}, Roles: anyUser},
		{Name: "project-write", Pattern: "/api/projects/**",
			Methods: []string{http.MethodPost, http.MethodPut, http.MethodDelete}, Roles: adminOnly},
	}
}

// loadRoutePolicies reads the table from filename, or falls back to the
// built-in one when no file is configured.
func loadRoutePolicies(filename string) ([]auth.RoutePolicy, error) {
	if filename == "" {
		return DefaultRoutePolicies(), nil
	}
	return auth.LoadPolicyFile(filename)
}
