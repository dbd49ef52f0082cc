package model

import (
	"strings"
	"time"
)

const (
	// WinningPoints is the score that ends a game of Catan
	WinningPoints = 10
	// MinParticipants is the smallest game that can be recorded
	MinParticipants = 2
)

// GameID uniquely identifies a game within a board
type GameID string

// Participant is one player's final score in a game
type Participant struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// GameRecord is an immutable ledger entry for one completed game.
// The JSON field names match records written by earlier deployments.
type GameRecord struct {
	ID        GameID        `json:"id"`
	BoardSlug string        `json:"boardSlug,omitempty"`
	Date      time.Time     `json:"date"`
	Players   []Participant `json:"players"`
	Winner    string        `json:"winner"`
}

// NamedParticipants drops entries whose name is blank, trimming the rest
func NamedParticipants(participants []Participant) []Participant {
	named := make([]Participant, 0, len(participants))
	for _, p := range participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		named = append(named, Participant{Name: name, Points: p.Points})
	}
	return named
}
