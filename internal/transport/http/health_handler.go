package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"deliverypulse/internal/services"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	Version    string `json:"version"`
	Dataset    string `json:"dataset"`
	Rows       int    `json:"rows"`
	Timestamps bool   `json:"timestamps"`
}

// HealthHandler reports liveness and dataset status.
type HealthHandler struct {
	data    *services.DataService
	version string
}

// NewHealthHandler creates the health check handler.
func NewHealthHandler(data *services.DataService, version string) *HealthHandler {
	return &HealthHandler{data: data, version: version}
}

// GetHealth handles GET /api/health.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Dataset()
	render.JSON(w, r, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Version:    h.version,
		Dataset:    ds.Source(),
		Rows:       ds.Len(),
		Timestamps: ds.HasTimestamps(),
	})
}
