package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/upb/project-manager/utils"
)

const readinessTimeout = 5 * time.Second

// Check states reported by /readyz.
const (
	checkHealthy       = "healthy"
	checkUnhealthy     = "unhealthy"
	checkNotConfigured = "not_configured"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves liveness and readiness. Readiness runs every named
// check concurrently; a nil checker counts as not configured.
type HealthHandler struct {
	checks map[string]HealthChecker
	names  []string
	logger *zap.Logger
}

func NewHealthHandler(logger *zap.Logger, checks map[string]HealthChecker) *HealthHandler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return &HealthHandler{checks: checks, names: names, logger: logger}
}

// HandleHealth answers 200 whenever the process is serving.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:    checkHealthy,
		Timestamp: timestamp(),
	})
}

// HandleReadiness answers 503 unless every check passes.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	results := h.run(ctx)

	resp := HealthResponse{Status: checkHealthy, Timestamp: timestamp(), Checks: results}
	status := http.StatusOK
	for _, state := range results {
		if state != checkHealthy {
			resp.Status = checkUnhealthy
			status = http.StatusServiceUnavailable
			break
		}
	}

	if err := utils.WriteJSON(w, status, utils.SuccessResponse{Data: resp}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) run(ctx context.Context) map[string]string {
	states := make([]string, len(h.names))

	var wg sync.WaitGroup
	for i, name := range h.names {
		i, name := i, name
		checker := h.checks[name]
		if checker == nil {
			states[i] = checkNotConfigured
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := checker.HealthCheck(ctx); err != nil {
				h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
				states[i] = checkUnhealthy
				return
			}
			states[i] = checkHealthy
		}()
	}
	wg.Wait()

	out := make(map[string]string, len(states))
	for i, name := range h.names {
		out[name] = states[i]
	}
	return out
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
