package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/catan-leaderboard/internal/assets"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/clock"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/idgen"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/services/board"
	"github.com/mcoot/catan-leaderboard/internal/services/ledger"
	"github.com/mcoot/catan-leaderboard/internal/services/profiles"
	"github.com/mcoot/catan-leaderboard/internal/services/stats"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	redisstorage "github.com/mcoot/catan-leaderboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Services
	AuthService    *auth.Service
	BoardService   *board.Service
	LedgerService  *ledger.Service
	StatsService   *stats.Service
	ProfileService *profiles.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AssetsConfig enables presigned profile uploads (optional)
	// If nil, upload requests fail with ErrUploadsUnavailable
	AssetsConfig *assets.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Uploads stay disabled unless a bucket is configured. The interface is
	// left nil rather than holding a nil *S3Presigner.
	var uploads assets.Presigner
	if cfg.AssetsConfig != nil && cfg.AssetsConfig.Bucket != "" {
		presigner, err := assets.NewS3Presigner(ctx, *cfg.AssetsConfig)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		uploads = presigner
	}

	return newWithDependencies(store, clock.New(), idgen.New(), uploads, cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	ids idgen.Generator,
	uploads assets.Presigner,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	if authCfg.BcryptCost == 0 {
		authCfg = auth.DefaultConfig()
	}

	authService := auth.New(store, logger, authCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            ids,
		AuthService:    authService,
		BoardService:   board.New(store, authService, clk, logger),
		LedgerService:  ledger.New(store, authService, clk, ids, logger),
		StatsService:   stats.New(store, logger),
		ProfileService: profiles.New(store, authService, uploads, ids, logger),
	}
}
