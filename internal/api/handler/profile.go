package handler

import (
	"net/http"

	"github.com/mcoot/catan-leaderboard/internal/api/middleware"
	"github.com/mcoot/catan-leaderboard/internal/api/request"
	"github.com/mcoot/catan-leaderboard/internal/api/response"
	"github.com/mcoot/catan-leaderboard/internal/services/profiles"
)

// ProfileHandler handles player profile media endpoints
type ProfileHandler struct {
	profileService profiles.ServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService profiles.ServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// List handles GET /api/v1/boards/{slug}/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.profileService.ListAll(r.Context(), pathVars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, links)
}

// Get handles GET /api/v1/boards/{slug}/profiles/{name}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := pathVars(r)
	url, err := h.profileService.Get(r.Context(), vars["slug"], vars["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileLink{PlayerName: vars["name"], ImageURL: url})
}

// Set handles PUT /api/v1/boards/{slug}/profiles/{name}
func (h *ProfileHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req request.SetProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	vars := pathVars(r)
	link, err := h.profileService.Set(r.Context(), vars["slug"], vars["name"], req.ImageURL, middleware.GetSecret(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileLink{PlayerName: link.PlayerName, ImageURL: link.AssetURL})
}

// RequestUpload handles POST /api/v1/boards/{slug}/profiles/{name}/upload
func (h *ProfileHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	var req request.UploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	vars := pathVars(r)
	upload, err := h.profileService.RequestUpload(r.Context(), vars["slug"], vars["name"], req.ContentType, req.Size, middleware.GetSecret(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UploadFromAsset(upload))
}
