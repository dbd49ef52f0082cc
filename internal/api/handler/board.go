package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/mcoot/catan-leaderboard/internal/api/middleware"
	"github.com/mcoot/catan-leaderboard/internal/api/request"
	"github.com/mcoot/catan-leaderboard/internal/api/response"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/services/board"
)

// BoardHandler handles board endpoints
type BoardHandler struct {
	boardService board.ServiceInterface
	authService  *auth.Service
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService board.ServiceInterface, authService *auth.Service) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		authService:  authService,
	}
}

// Create handles POST /api/v1/boards
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	b, err := h.boardService.Create(r.Context(), req.Name, req.Slug, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/boards/"+url.PathEscape(b.Slug), response.BoardFromModel(b))
}

// List handles GET /api/v1/boards
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boardService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardsFromModel(boards))
}

// Get handles GET /api/v1/boards/{slug}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.boardService.Get(r.Context(), pathVars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BoardFromModel(b))
}

// Delete handles DELETE /api/v1/boards/{slug}
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := pathVars(r)["slug"]

	if err := h.boardService.Delete(r.Context(), slug, middleware.GetSecret(r.Context())); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{
		Success: true,
		Message: fmt.Sprintf("Board %q and all associated data has been deleted", slug),
	})
}

// Authenticate handles POST /api/v1/boards/{slug}/auth
func (h *BoardHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req request.AuthenticateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.authService.Authenticate(r.Context(), pathVars(r)["slug"], req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Success: true, Message: "Authentication successful"})
}
