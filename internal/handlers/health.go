package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/latoulicious/setforge/internal/version"
)

type healthResponse struct {
	Status   string       `json:"status"`
	Database string       `json:"database"`
	Uptime   string       `json:"uptime"`
	Version  version.Info `json:"version"`
}

// Health reports liveness and database reachability.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Version:  version.Get(),
	}

	status := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.requestLogger(r).Error("Health check database ping failed", err, nil)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}
