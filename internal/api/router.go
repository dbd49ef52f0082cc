package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/catan-leaderboard/internal/api/handler"
	"github.com/mcoot/catan-leaderboard/internal/api/middleware"
	httpmw "github.com/mcoot/catan-leaderboard/internal/middleware"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/services/board"
	"github.com/mcoot/catan-leaderboard/internal/services/ledger"
	"github.com/mcoot/catan-leaderboard/internal/services/profiles"
	"github.com/mcoot/catan-leaderboard/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Store          handler.Pinger
	AuthService    *auth.Service
	BoardService   *board.Service
	LedgerService  *ledger.Service
	StatsService   *stats.Service
	ProfileService *profiles.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Match on the escaped path so "%2F" in a player name stays in one segment.
	// Must be set before subrouters copy the router config.
	r.UseEncodedPath()

	// Create handlers
	boardHandler := handler.NewBoardHandler(cfg.BoardService, cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.LedgerService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.StatsService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)
	legacyHandler := handler.NewLegacyHandler(cfg.LedgerService, cfg.StatsService, cfg.ProfileService)
	healthHandler := handler.NewHealthHandler(cfg.Store)

	// Mutating routes carry the board password as a bearer token
	withSecret := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireSecret(h)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tracing)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(httpmw.Logging(cfg.Logger))

	// Board routes
	api.HandleFunc("/boards", boardHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/boards", boardHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/boards/{slug}", boardHandler.Get).Methods(http.MethodGet)
	api.Handle("/boards/{slug}", withSecret(boardHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{slug}/auth", boardHandler.Authenticate).Methods(http.MethodPost)

	// Game ledger routes
	api.HandleFunc("/boards/{slug}/games", gameHandler.List).Methods(http.MethodGet)
	api.Handle("/boards/{slug}/games", withSecret(gameHandler.Record)).Methods(http.MethodPost)

	// Stats routes
	api.HandleFunc("/boards/{slug}/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/boards/{slug}/players/{name}", leaderboardHandler.Player).Methods(http.MethodGet)

	// Profile routes
	api.HandleFunc("/boards/{slug}/profiles", profileHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/boards/{slug}/profiles/{name}", profileHandler.Get).Methods(http.MethodGet)
	api.Handle("/boards/{slug}/profiles/{name}", withSecret(profileHandler.Set)).Methods(http.MethodPut)
	api.Handle("/boards/{slug}/profiles/{name}/upload", withSecret(profileHandler.RequestUpload)).Methods(http.MethodPost)

	// Legacy ungrouped data (read only)
	api.HandleFunc("/legacy/games", legacyHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/legacy/leaderboard", legacyHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/legacy/profiles", legacyHandler.Profiles).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
