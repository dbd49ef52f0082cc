package response

import (
	"time"

	"github.com/mcoot/catan-leaderboard/internal/assets"
	"github.com/mcoot/catan-leaderboard/internal/model"
)

// Board is the public projection of a board; the password hash never leaves the service
type Board struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// BoardFromModel converts model.Board
func BoardFromModel(b *model.Board) Board {
	info := b.Info()
	return Board{
		Name:      info.Name,
		Slug:      info.Slug,
		CreatedAt: info.CreatedAt,
	}
}

// BoardsFromModel converts a slice of boards
func BoardsFromModel(boards []*model.Board) []Board {
	resp := make([]Board, len(boards))
	for i, b := range boards {
		resp[i] = BoardFromModel(b)
	}
	return resp
}

// Participant is one player's final score in a game
type Participant struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Game represents a recorded game
type Game struct {
	ID        string        `json:"id"`
	BoardSlug string        `json:"boardSlug,omitempty"`
	Date      time.Time     `json:"date"`
	Players   []Participant `json:"players"`
	Winner    string        `json:"winner"`
}

// GameFromModel converts model.GameRecord
func GameFromModel(g *model.GameRecord) Game {
	players := make([]Participant, len(g.Players))
	for i, p := range g.Players {
		players[i] = Participant{Name: p.Name, Points: p.Points}
	}
	return Game{
		ID:        string(g.ID),
		BoardSlug: g.BoardSlug,
		Date:      g.Date,
		Players:   players,
		Winner:    g.Winner,
	}
}

// GamesFromModel converts a slice of game records
func GamesFromModel(games []*model.GameRecord) []Game {
	resp := make([]Game, len(games))
	for i, g := range games {
		resp[i] = GameFromModel(g)
	}
	return resp
}

// PlayerStats is one leaderboard row
type PlayerStats struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	TotalPoints   int64   `json:"totalPoints"`
	GamesPlayed   int64   `json:"gamesPlayed"`
	Wins          int64   `json:"wins"`
	AveragePoints float64 `json:"averagePoints"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(s model.PlayerStats) PlayerStats {
	return PlayerStats{
		Rank:          s.Rank,
		Name:          s.Name,
		TotalPoints:   s.TotalPoints,
		GamesPlayed:   s.GamesPlayed,
		Wins:          s.Wins,
		AveragePoints: s.AveragePoints,
	}
}

// LeaderboardFromModel converts ranked stat rows
func LeaderboardFromModel(rows []model.PlayerStats) []PlayerStats {
	resp := make([]PlayerStats, len(rows))
	for i, r := range rows {
		resp[i] = PlayerStatsFromModel(r)
	}
	return resp
}

// ProfileLink is a player's linked media
type ProfileLink struct {
	PlayerName string `json:"playerName"`
	ImageURL   string `json:"imageUrl"`
}

// Upload is a presigned profile media upload
type Upload struct {
	UploadURL   string    `json:"uploadUrl"`
	ImageURL    string    `json:"imageUrl"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UploadFromAsset converts assets.Upload
func UploadFromAsset(u *assets.Upload) Upload {
	return Upload{
		UploadURL:   u.UploadURL,
		ImageURL:    u.AssetURL,
		Key:         u.Key,
		ContentType: u.ContentType,
		ExpiresAt:   u.ExpiresAt,
	}
}

// Message is a plain confirmation
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Health reports service and store status
type Health struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
