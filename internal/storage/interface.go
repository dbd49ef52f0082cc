package storage

import (
	"context"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations wrap every backing store failure with model.ErrUpstream.
// Entity writes into a board namespace fail with model.ErrBoardNotFound when
// the board record does not exist at commit time.
type Storage interface {
	// Board operations
	CreateBoard(ctx context.Context, board *model.Board) error
	GetBoard(ctx context.Context, slug string) (*model.Board, error)
	ListBoards(ctx context.Context) ([]*model.Board, error)
	DeleteBoard(ctx context.Context, slug string) error

	// Ledger operations. AppendGame persists the record and applies every
	// delta with atomic increments as a single unit.
	AppendGame(ctx context.Context, ns keyspace.Namespace, game *model.GameRecord, deltas []model.AggregateDelta) error
	ListGames(ctx context.Context, ns keyspace.Namespace) ([]*model.GameRecord, error)

	// Aggregate operations
	ListPlayerAggregates(ctx context.Context, ns keyspace.Namespace) ([]model.PlayerAggregate, error)
	GetPlayerAggregate(ctx context.Context, ns keyspace.Namespace, name string) (*model.PlayerAggregate, error)

	// Profile link operations
	SetProfileLink(ctx context.Context, ns keyspace.Namespace, name, assetURL string) error
	GetProfileLink(ctx context.Context, ns keyspace.Namespace, name string) (string, error)
	ListProfileLinks(ctx context.Context, ns keyspace.Namespace) (map[string]string, error)

	Ping(ctx context.Context) error
	Close() error
}
