package handler

import (
	"net/http"

	"github.com/mcoot/catan-leaderboard/internal/api/middleware"
	"github.com/mcoot/catan-leaderboard/internal/api/request"
	"github.com/mcoot/catan-leaderboard/internal/api/response"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/ledger"
)

// GameHandler handles game ledger endpoints
type GameHandler struct {
	ledgerService ledger.ServiceInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(ledgerService ledger.ServiceInterface) *GameHandler {
	return &GameHandler{
		ledgerService: ledgerService,
	}
}

// List handles GET /api/v1/boards/{slug}/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.ledgerService.ListGames(r.Context(), pathVars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Record handles POST /api/v1/boards/{slug}/games
func (h *GameHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.RecordGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	participants := make([]model.Participant, len(req.Players))
	for i, p := range req.Players {
		participants[i] = model.Participant{Name: p.Name, Points: p.Points}
	}

	game, err := h.ledgerService.RecordGame(r.Context(), pathVars(r)["slug"], participants, middleware.GetSecret(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, r.URL.Path, response.GameFromModel(game))
}
