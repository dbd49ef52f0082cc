package model

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of these so
// callers can branch on either the category or the precise cause.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("backing store unavailable")
)

var (
	// Board errors
	ErrBoardNotFound = fmt.Errorf("%w: board not found", ErrNotFound)
	ErrPartialDelete = fmt.Errorf("%w: board was only partially deleted", ErrUpstream)
	ErrBoardExists   = fmt.Errorf("%w: a board with this slug already exists", ErrConflict)
	ErrInvalidSlug   = fmt.Errorf("%w: slug can only contain lowercase letters, numbers, and hyphens", ErrValidation)
	ErrMissingName   = fmt.Errorf("%w: board name is required", ErrValidation)
	ErrMissingSecret = fmt.Errorf("%w: password is required", ErrValidation)

	// Auth errors
	ErrInvalidSecret = fmt.Errorf("%w: invalid password", ErrUnauthorized)

	// Game rule errors, reported in the order they are checked
	ErrTooFewPlayers   = fmt.Errorf("%w: at least 2 players required", ErrValidation)
	ErrTooManyPoints   = fmt.Errorf("%w: no player can have more than 10 points", ErrValidation)
	ErrNegativePoints  = fmt.Errorf("%w: points cannot be negative", ErrValidation)
	ErrNoWinner        = fmt.Errorf("%w: exactly one player must have 10 points to win", ErrValidation)
	ErrMultipleWinners = fmt.Errorf("%w: only one winner allowed", ErrValidation)
	ErrDuplicatePlayer = fmt.Errorf("%w: each player can only appear once per game", ErrValidation)

	// Player and profile errors
	ErrPlayerNotFound     = fmt.Errorf("%w: player not found", ErrNotFound)
	ErrProfileNotFound    = fmt.Errorf("%w: profile not found", ErrNotFound)
	ErrMissingPlayerName  = fmt.Errorf("%w: player name is required", ErrValidation)
	ErrInvalidAssetURL    = fmt.Errorf("%w: asset url must be an absolute http(s) url", ErrValidation)
	ErrUnsupportedMedia   = fmt.Errorf("%w: unsupported file type", ErrValidation)
	ErrMediaTooLarge      = fmt.Errorf("%w: file too large, maximum size is 50MB", ErrValidation)
	ErrUploadsUnavailable = errors.New("profile uploads are not configured")
)

// Upstream wraps a backing store failure so it is reported as ErrUpstream
// while keeping the original cause inspectable.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
