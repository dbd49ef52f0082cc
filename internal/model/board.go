package model

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Board is an isolated leaderboard owned by one group and gated by a shared password
type Board struct {
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	PasswordHash string    `json:"password"` // bcrypt hash, never returned to readers
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidSlug reports whether slug is non-empty and only uses [a-z0-9-]
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// BoardInfo is the read projection of a Board without the password hash
type BoardInfo struct {
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Info strips the password hash
func (b *Board) Info() BoardInfo {
	return BoardInfo{
		Name:      b.Name,
		Slug:      b.Slug,
		CreatedAt: b.CreatedAt,
	}
}
