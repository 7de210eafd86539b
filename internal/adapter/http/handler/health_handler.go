package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 5 * time.Second

// healthCheck probes one backing dependency.
type healthCheck struct {
	name  string
	probe func(context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checks []healthCheck
}

// NewHealthHandler wires readiness probes for the two backing stores.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return newHealthHandlerWithChecks([]healthCheck{
		{name: "postgres", probe: pool.Ping},
		{name: "redis", probe: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	})
}

func newHealthHandlerWithChecks(checks []healthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether every backing store answers within the probe
// timeout. The first failing dependency is named in the response.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	components := make(map[string]string, len(h.checks)+1)
	for _, check := range h.checks {
		if err := check.probe(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, check.name+" unhealthy", err.Error())
			return
		}
		components[check.name] = "ok"
	}

	components["status"] = "ready"
	writeJSON(w, http.StatusOK, components)
}
