package handler

import (
	"net/http"

	"github.com/mcoot/catan-leaderboard/internal/api/response"
	"github.com/mcoot/catan-leaderboard/internal/services/ledger"
	"github.com/mcoot/catan-leaderboard/internal/services/profiles"
	"github.com/mcoot/catan-leaderboard/internal/services/stats"
)

// LegacyHandler serves read-only views of the ungrouped pre-board data
type LegacyHandler struct {
	ledgerService  ledger.ServiceInterface
	statsService   stats.ServiceInterface
	profileService profiles.ServiceInterface
}

// NewLegacyHandler creates a new legacy handler
func NewLegacyHandler(ledgerService ledger.ServiceInterface, statsService stats.ServiceInterface, profileService profiles.ServiceInterface) *LegacyHandler {
	return &LegacyHandler{
		ledgerService:  ledgerService,
		statsService:   statsService,
		profileService: profileService,
	}
}

// Games handles GET /api/v1/legacy/games
func (h *LegacyHandler) Games(w http.ResponseWriter, r *http.Request) {
	games, err := h.ledgerService.ListLegacyGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Leaderboard handles GET /api/v1/legacy/leaderboard
func (h *LegacyHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.LegacyLeaderboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(rows))
}

// Profiles handles GET /api/v1/legacy/profiles
func (h *LegacyHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	links, err := h.profileService.ListLegacy(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, links)
}
