package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger is the part of pgxpool.Pool the probes use.
type dbPinger interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live reports process liveness and always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 once the database accepts connections, 503 before.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if _, ok := h.checkPostgres(ctx); !ok {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports per-component status with measured latency plus the
// build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	pg, ok := h.checkPostgres(ctx)
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:     status,
		Version:    h.version,
		Components: map[string]componentStatus{"postgres": pg},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkPostgres(ctx context.Context) (componentStatus, bool) {
	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return componentStatus{Status: "down"}, false
	}
	return componentStatus{Status: "ok", Latency: time.Since(start).String()}, true
}
