package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/project-manager/config"
	"github.com/upb/project-manager/internal/auth"
	"github.com/upb/project-manager/internal/observability"
	"github.com/upb/project-manager/middleware"
	"github.com/upb/project-manager/repositories"
	"github.com/upb/project-manager/repositories/postgres"
	"github.com/upb/project-manager/services"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	DB      *postgres.DB
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users              repositories.UserRepository
	Projects           repositories.ProjectRepository
	ProjectAssignments repositories.ProjectAssignmentRepository
	TxManager          repositories.TransactionManager

	// Auth core
	Hasher   *auth.PasswordHasher
	Codec    *auth.TokenCodec
	Resolver *auth.Resolver
	Verifier *auth.Verifier
	Gate     *auth.Gate

	// Services
	UserService       *services.UserService
	AuthService       *services.AuthService
	ProjectService    *services.ProjectService
	AssignmentService *services.AssignmentService

	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesFromFactory(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesFromFactory wires everything on top of an open repository
// factory. It does not take ownership of the factory on error.
func NewDependenciesFromFactory(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	if err := deps.DB.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	deps.initRepositories()

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initServices()

	if err := deps.bootstrapAdmin(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Projects = repos.Projects
	d.ProjectAssignments = repos.ProjectAssignments
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initAuth(cfg *config.Config) error {
	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	codec, err := auth.NewTokenCodec(cfg.Auth.SecretKey,
		auth.WithTTL(cfg.Auth.TokenTTL),
		auth.WithIssuer(cfg.Auth.Issuer),
	)
	if err != nil {
		return err
	}

	policies, err := loadRoutePolicies(cfg.Auth.PolicyFile)
	if err != nil {
		return err
	}
	gate, err := auth.NewGate(policies)
	if err != nil {
		return fmt.Errorf("invalid route policy table: %w", err)
	}

	d.Hasher = hasher
	d.Codec = codec
	d.Resolver = auth.NewResolver(d.Users)
	d.Verifier = auth.NewVerifier(d.Users, hasher)
	d.Gate = gate

	source := "built-in"
	if cfg.Auth.PolicyFile != "" {
		source = cfg.Auth.PolicyFile
	}
	d.Logger.Info("auth initialized",
		zap.String("policy_source", source),
		zap.Strings("policies", gate.Policies()),
		zap.Duration("token_ttl", codec.TTL()),
		zap.Int("bcrypt_cost", hasher.Cost()))

	return nil
}

func (d *Dependencies) initServices() {
	if d.Config.Observability.MetricsEnabled {
		d.Metrics = observability.NewMetrics()
	}

	d.UserService = services.NewUserService(d.Users, d.Hasher, d.Logger)
	d.AuthService = services.NewAuthService(d.Verifier, d.Codec, d.Logger)
	d.ProjectService = services.NewProjectService(d.Projects, d.Users, d.Logger)
	d.AssignmentService = services.NewAssignmentService(d.TxManager, &repositories.Repositories{
		Users:              d.Users,
		Projects:           d.Projects,
		ProjectAssignments: d.ProjectAssignments,
	}, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Codec, d.Resolver, d.Gate, d.Metrics, d.Logger)
}

// bootstrapAdmin creates the configured ADMIN account on first start.
func (d *Dependencies) bootstrapAdmin(ctx context.Context, cfg *config.Config) error {
	if !cfg.Auth.BootstrapEnabled() {
		return nil
	}

	created, err := d.UserService.EnsureAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword)
	if err != nil {
		return err
	}
	if created {
		d.Logger.Info("bootstrap admin created", zap.String("email", cfg.Auth.BootstrapAdminEmail))
	} else {
		d.Logger.Debug("bootstrap admin already present", zap.String("email", cfg.Auth.BootstrapAdminEmail))
	}
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
		d.RepoFactory = nil
	}

	_ = d.Logger.Sync()

	return errors.Join(errs...)
}
