package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/langsync/pkg/logger"
)

// Check is a named readiness probe of one dependency.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// HealthReport is the body written by HealthCheckHandler.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health statuses.
const (
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

const defaultProbeTimeout = 2 * time.Second

// HealthCheckHandler serves liveness when no checks are given and readiness
// otherwise. Every probe runs with the request context bounded by a short
// timeout; a failing probe turns the response into 503 with the failure
// reported under its name.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			writeHealth(w, http.StatusOK, HealthReport{Status: StatusAlive})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), defaultProbeTimeout)
		defer cancel()

		report := HealthReport{Status: StatusReady, Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for _, c := range checks {
			if err := c.Probe(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Component(c.Name), logger.Error(err))
				report.Checks[c.Name] = err.Error()
				report.Status = StatusNotReady
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[c.Name] = "ok"
		}
		writeHealth(w, status, report)
	}
}

func writeHealth(w http.ResponseWriter, status int, report HealthReport) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}
