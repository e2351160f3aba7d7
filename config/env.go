package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envReader reads typed values from the environment and collects parse
// failures so New can report all of them together.
type envReader struct {
	errs []error
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}

func (e *envReader) fail(key, raw, kind string) {
	e.errs = append(e.errs, fmt.Errorf("%s: %q is not a valid %s", key, raw, kind))
}

// firstSet returns the first key that has a value, or the last key.
func (e *envReader) firstSet(keys ...string) string {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return k
		}
	}
	return keys[len(keys)-1]
}

func (e *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		e.fail(key, raw, "integer")
		return def
	}
	return v
}

func (e *envReader) boolean(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		e.fail(key, raw, "boolean")
		return def
	}
	return v
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		e.fail(key, raw, "duration")
		return def
	}
	return v
}

// list splits a comma separated value. Blank entries are dropped and an
// all-blank value falls back to def.
func (e *envReader) list(key string, def ...string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (e *envReader) database() DatabaseConfig {
	cfg := DatabaseConfig{
		URL:             e.str("DATABASE_URL", ""),
		MaxOpenConns:    e.integer("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    e.integer("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		Migrate:         e.boolean("DB_MIGRATE", true),
	}
	if cfg.URL != "" {
		return cfg
	}
	cfg.Host = e.str("DB_HOST", "localhost")
	cfg.Port = e.integer("DB_PORT", 5432)
	cfg.User = e.str("DB_USER", "dev")
	cfg.Password = e.str("DB_PASSWORD", "dev")
	cfg.Database = e.str("DB_NAME", "projects")
	cfg.SSLMode = e.str("DB_SSLMODE", "disable")
	return cfg
}
