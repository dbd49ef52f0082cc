package handler

import (
	"net/http"

	"github.com/mcoot/catan-leaderboard/internal/api/response"
	"github.com/mcoot/catan-leaderboard/internal/services/stats"
)

// LeaderboardHandler handles leaderboard and player stat endpoints
type LeaderboardHandler struct {
	statsService stats.ServiceInterface
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(statsService stats.ServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{
		statsService: statsService,
	}
}

// Get handles GET /api/v1/boards/{slug}/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.Leaderboard(r.Context(), pathVars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(rows))
}

// Player handles GET /api/v1/boards/{slug}/players/{name}
func (h *LeaderboardHandler) Player(w http.ResponseWriter, r *http.Request) {
	vars := pathVars(r)
	row, err := h.statsService.PlayerStats(r.Context(), vars["slug"], vars["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(*row))
}
