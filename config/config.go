package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/upb/project-manager/internal/auth"
)

// MinProductionKeyLength is the shortest signing key accepted in production.
const MinProductionKeyLength = 32

// Config is the process configuration, read once at startup.
type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration // per-request deadline applied by the router
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	TLS             TLSConfig
}

type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// DatabaseConfig describes the PostgreSQL pool. URL, when set from
// DATABASE_URL, wins over the discrete fields.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string `json:"-"`
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	SecretKey  auth.SigningKey
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
	// PolicyFile is an optional TOML route table replacing the built-in one.
	PolicyFile string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string `json:"-"`
}

type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or text
	MetricsEnabled bool
}

// New reads the configuration from the environment, after loading .env when
// present. Malformed values are errors rather than silently replaced by
// their defaults.
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	var env envReader
	cfg := &Config{
		Environment: env.str("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            env.str("SERVER_HOST", "0.0.0.0"),
			Port:            env.integer(env.firstSet("PORT", "SERVER_PORT"), 8080),
			ReadTimeout:     env.duration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.duration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			RequestTimeout:  env.duration("SERVER_REQUEST_TIMEOUT", 60*time.Second),
			ShutdownTimeout: env.duration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  env.list("CORS_ALLOWED_ORIGINS", "http://localhost:3000", "http://localhost:5173"),
			TLS: TLSConfig{
				Enabled:  env.boolean("TLS_ENABLED", false),
				CertFile: env.str("TLS_CERT_FILE", "certs/cert.pem"),
				KeyFile:  env.str("TLS_KEY_FILE", "certs/key.pem"),
			},
		},
		Database: env.database(),
		Auth: AuthConfig{
			SecretKey:              auth.SigningKey(env.str("JWT_SECRET_KEY", "")),
			TokenTTL:               env.duration("JWT_TTL", auth.DefaultTokenTTL),
			Issuer:                 env.str("JWT_ISSUER", "project-manager"),
			BcryptCost:             env.integer("BCRYPT_COST", bcrypt.DefaultCost),
			PolicyFile:             env.str("AUTH_POLICY_FILE", ""),
			BootstrapAdminEmail:    env.str("BOOTSTRAP_ADMIN_EMAIL", ""),
			BootstrapAdminPassword: env.str("BOOTSTRAP_ADMIN_PASSWORD", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:       env.str("LOG_LEVEL", "info"),
			LogFormat:      env.str("LOG_FORMAT", "json"),
			MetricsEnabled: env.boolean("METRICS_ENABLED", true),
		},
	}

	if err := env.err(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem at once, joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	db := c.Database
	if db.URL == "" {
		check(db.Host != "", "database configuration required: set DATABASE_URL or DB_HOST")
		check(db.User != "", "database user is required")
		check(db.Database != "", "database name is required")
	}

	a := c.Auth
	check(len(a.SecretKey) > 0, "JWT_SECRET_KEY is required")
	if len(a.SecretKey) > 0 && c.IsProduction() {
		check(len(a.SecretKey) >= MinProductionKeyLength,
			"JWT_SECRET_KEY must be at least %d bytes in production", MinProductionKeyLength)
	}
	check(a.TokenTTL > 0, "JWT_TTL must be positive")
	check(a.BcryptCost >= bcrypt.MinCost && a.BcryptCost <= bcrypt.MaxCost,
		"BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	check((a.BootstrapAdminEmail == "") == (a.BootstrapAdminPassword == ""),
		"BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")

	check(c.Observability.LogLevel != "", "log level is required")

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// BootstrapEnabled reports whether an initial admin account is configured.
func (c *AuthConfig) BootstrapEnabled() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}

// DSN returns a postgres:// URL for lib/pq. Credentials are escaped.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// LogString describes the target database without credentials.
func (c *DatabaseConfig) LogString() string {
	host, port, name := c.Host, strconv.Itoa(c.Port), c.Database
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return "host=<from DATABASE_URL>"
		}
		host, port, name = u.Hostname(), u.Port(), strings.TrimPrefix(u.Path, "/")
		if port == "" {
			port = "5432"
		}
	}
	return fmt.Sprintf("host=%s port=%s database=%s", host, port, name)
}

func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
