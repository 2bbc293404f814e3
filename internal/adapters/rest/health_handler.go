package rest

import (
	"context"
	"net/http"
	"time"
)

const readinessTimeout = 2 * time.Second

// Version is the build version reported by the health endpoints.
type Version string

// HealthCheck probes one dependency for readiness.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthChecks is the readiness probe list, kept as a named type so wire
// can inject it.
type HealthChecks []HealthCheck

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version Version
	checks  HealthChecks
}

func NewHealthHandler(base *BaseHandler, version Version, checks HealthChecks) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		checks:      checks,
	}
}

// GetLiveness implements the liveness probe endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   string(h.version),
	}, http.StatusOK)
}

// GetReadiness implements the readiness probe endpoint
// This checks all critical dependencies
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   string(h.version),
		Checks:    make(map[string]string, len(h.checks)),
	}
	httpStatus := http.StatusOK

	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Warn(ctx, "readiness check failed", "check", c.Name, "error", err)
			status.Checks[c.Name] = "down"
			status.Status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		status.Checks[c.Name] = "up"
	}

	h.WriteJSONResponse(w, r, status, httpStatus)
}
