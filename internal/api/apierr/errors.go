package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/catan-leaderboard/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidSlug        = "INVALID_SLUG"
	CodeMissingField       = "MISSING_FIELD"
	CodeInvalidGame        = "INVALID_GAME"
	CodeInvalidAssetURL    = "INVALID_ASSET_URL"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA"
	CodeMediaTooLarge      = "MEDIA_TOO_LARGE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeBoardNotFound      = "BOARD_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeProfileNotFound    = "PROFILE_NOT_FOUND"
	CodeBoardExists        = "BOARD_EXISTS"
	CodePartialDelete      = "PARTIAL_DELETE"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeUploadsUnavailable = "UPLOADS_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error is reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation, reported with the violated rule
	case errors.Is(err, model.ErrInvalidSlug):
		return validation(CodeInvalidSlug, err)
	case errors.Is(err, model.ErrMissingName),
		errors.Is(err, model.ErrMissingSecret),
		errors.Is(err, model.ErrMissingPlayerName):
		return validation(CodeMissingField, err)
	case errors.Is(err, model.ErrTooFewPlayers),
		errors.Is(err, model.ErrTooManyPoints),
		errors.Is(err, model.ErrNegativePoints),
		errors.Is(err, model.ErrNoWinner),
		errors.Is(err, model.ErrMultipleWinners),
		errors.Is(err, model.ErrDuplicatePlayer):
		return validation(CodeInvalidGame, err)
	case errors.Is(err, model.ErrInvalidAssetURL):
		return validation(CodeInvalidAssetURL, err)
	case errors.Is(err, model.ErrUnsupportedMedia):
		return validation(CodeUnsupportedMedia, err)
	case errors.Is(err, model.ErrMediaTooLarge):
		return validation(CodeMediaTooLarge, err)
	case errors.Is(err, model.ErrValidation):
		return validation(CodeInvalidRequest, err)

	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Unauthorized"}}

	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBoardNotFound, "Board not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProfileNotFound, "Profile not found"}}

	case errors.Is(err, model.ErrBoardExists):
		return &httpError{http.StatusConflict, APIError{CodeBoardExists, "A board with this slug already exists"}}

	// Partial delete is checked before the generic upstream case it wraps
	case errors.Is(err, model.ErrPartialDelete):
		return &httpError{http.StatusServiceUnavailable, APIError{CodePartialDelete, "Board was only partially deleted, retry the delete"}}
	case errors.Is(err, model.ErrUpstream):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Storage is unavailable, nothing was changed"}}
	case errors.Is(err, model.ErrUploadsUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeUploadsUnavailable, "Profile uploads are not configured"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// validation reports the error's own message without the category prefix
func validation(code string, err error) *httpError {
	msg := strings.TrimPrefix(err.Error(), model.ErrValidation.Error()+": ")
	return &httpError{http.StatusBadRequest, APIError{code, msg}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Board password required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
