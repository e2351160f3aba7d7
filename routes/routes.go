package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/project-manager/app"
	"github.com/upb/project-manager/handlers"
	"github.com/upb/project-manager/middleware"
	"github.com/upb/project-manager/models"
	"github.com/upb/project-manager/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	logger := deps.Logger

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger, deps.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Config.Server.RequestTimeout))
	r.Use(chimw.StripSlashes)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every request, matched or not, goes through the route policy table.
	r.Use(deps.AuthMiddleware.Authenticate)

	var db handlers.HealthChecker
	if deps.DB != nil {
		db = deps.DB
	}
	health := handlers.NewHealthHandler(logger, map[string]handlers.HealthChecker{"database": db})
	authHandler := handlers.NewAuthHandler(deps.UserService, deps.AuthService, logger)
	users := handlers.NewUserHandler(deps.UserService, logger)
	projects := handlers.NewProjectHandler(deps.ProjectService, logger)
	assignments := handlers.NewAssignmentHandler(deps.AssignmentService, logger)

	adminOnly := deps.AuthMiddleware.RequireRole(models.RoleAdmin)

	// Health check endpoints
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/auth/users", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Get("/test", authHandler.HandleTest)

		r.Get("/me", users.HandleMe)
		r.Get("/me/token", users.HandleMeToken)

		// User management
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", users.HandleList)
			r.Post("/", users.HandleCreate)
			r.Get("/{id}", users.HandleGet)
			r.Put("/{id}", users.HandleUpdate)
			r.Delete("/{id}", users.HandleDelete)
		})
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", projects.HandleList)
		r.Get("/{id}", projects.HandleGet)
		r.Get("/status/{status}", projects.HandleListByStatus)
		r.Get("/creator/{createdBy}", projects.HandleListByCreator)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", projects.HandleCreate)
			r.Put("/{id}", projects.HandleUpdate)
			r.Delete("/{id}", projects.HandleDelete)
		})

		r.Route("/admin/project-assignments", func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", assignments.HandleAssign)
			r.Get("/project/{projectId}", assignments.HandleListByProject)
			r.Get("/user/{userId}", assignments.HandleListByUser)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}
