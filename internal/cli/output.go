package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Board:
		o.printBoard(v)
	case []Board:
		o.printBoards(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case []PlayerStats:
		o.printLeaderboard(v)
	case ProfileLink:
		o.printf("%s: %s\n", v.PlayerName, v.ImageURL)
	case Profiles:
		o.printProfiles(v)
	case Upload:
		o.printf("Uploaded %s\nImage URL: %s\n", v.Key, v.ImageURL)
	case Message:
		o.printf("%s\n", v.Message)
	case HealthResult:
		o.printf("Status: %s\nStore: %s\n", v.Status, v.Store)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Board response type (matches API)
type Board struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Participant response type
type Participant struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Game response type
type Game struct {
	ID        string        `json:"id"`
	BoardSlug string        `json:"boardSlug,omitempty"`
	Date      time.Time     `json:"date"`
	Players   []Participant `json:"players"`
	Winner    string        `json:"winner"`
}

// PlayerStats response type
type PlayerStats struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	TotalPoints   int64   `json:"totalPoints"`
	GamesPlayed   int64   `json:"gamesPlayed"`
	Wins          int64   `json:"wins"`
	AveragePoints float64 `json:"averagePoints"`
}

// ProfileLink response type
type ProfileLink struct {
	PlayerName string `json:"playerName"`
	ImageURL   string `json:"imageUrl"`
}

// Profiles maps player names to image URLs
type Profiles map[string]string

// Upload response type
type Upload struct {
	UploadURL   string    `json:"uploadUrl"`
	ImageURL    string    `json:"imageUrl"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Message response type
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printBoard(b Board) {
	o.printf("Board: %s (%s)\n", b.Name, b.Slug)
	o.printf("Created: %s\n", b.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printBoards(boards []Board) {
	if len(boards) == 0 {
		o.printf("No boards\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SLUG\tNAME\tCREATED")
	for _, b := range boards {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Slug, b.Name, b.CreatedAt.Format("2006-01-02"))
	}
	_ = tw.Flush()
}

func (o *Output) printGame(g Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("Date: %s\n", g.Date.Format(time.RFC3339))
	o.printf("Winner: %s\n", g.Winner)
	for _, p := range g.Players {
		o.printf("  - %s: %d\n", p.Name, p.Points)
	}
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		o.printf("No games recorded\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tWINNER\tPLAYERS")
	for _, g := range games {
		players := ""
		for i, p := range g.Players {
			if i > 0 {
				players += ", "
			}
			players += fmt.Sprintf("%s %d", p.Name, p.Points)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Date.Format("2006-01-02 15:04"), g.Winner, players)
	}
	_ = tw.Flush()
}

func (o *Output) printPlayerStats(s PlayerStats) {
	o.printf("Player: %s\n", s.Name)
	o.printf("Rank: %d\n", s.Rank)
	o.printf("Total Points: %d\n", s.TotalPoints)
	o.printf("Games Played: %d\n", s.GamesPlayed)
	o.printf("Wins: %d\n", s.Wins)
	o.printf("Average Points: %.2f\n", s.AveragePoints)
}

func (o *Output) printLeaderboard(rows []PlayerStats) {
	if len(rows) == 0 {
		o.printf("No games recorded\n")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RANK\tPLAYER\tPOINTS\tGAMES\tWINS\tAVG")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.2f\n", r.Rank, r.Name, r.TotalPoints, r.GamesPlayed, r.Wins, r.AveragePoints)
	}
	_ = tw.Flush()
}

func (o *Output) printProfiles(p Profiles) {
	if len(p) == 0 {
		o.printf("No profiles\n")
		return
	}
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		o.printf("%s: %s\n", name, p[name])
	}
}
