package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/catan-leaderboard/internal/api/response"
)

// Pinger checks that the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "degraded", Store: "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Store: "ok"})
}
