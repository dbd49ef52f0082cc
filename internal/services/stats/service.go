package stats

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/services/stats")

// Service derives leaderboards from the per-board player aggregates
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new stats Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ApplyGame returns the aggregate increments a recorded game contributes:
// every participant gains their points and one game played, the winner also
// gains one win. The store applies them with atomic increments.
func ApplyGame(record *model.GameRecord) []model.AggregateDelta {
	deltas := make([]model.AggregateDelta, 0, len(record.Players))
	for _, p := range record.Players {
		d := model.AggregateDelta{
			Name:        p.Name,
			TotalPoints: int64(p.Points),
			GamesPlayed: 1,
		}
		if p.Name == record.Winner {
			d.Wins = 1
		}
		deltas = append(deltas, d)
	}
	return deltas
}

// Rank orders aggregates by total points descending, breaking ties by name,
// and numbers the rows from 1
func Rank(aggregates []model.PlayerAggregate) []model.PlayerStats {
	rows := make([]model.PlayerStats, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, model.StatsFromAggregate(a))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].Name < rows[j].Name
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Leaderboard returns the ranked stat rows of a board
func (s *Service) Leaderboard(ctx context.Context, slug string) (_ []model.PlayerStats, err error) {
	ctx, span := tracer.Start(ctx, "stats.Leaderboard")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if _, err := s.storage.GetBoard(ctx, slug); err != nil {
		return nil, err
	}
	return s.leaderboard(ctx, keyspace.Board(slug))
}

// LegacyLeaderboard ranks the aggregates of the ungrouped legacy namespace
func (s *Service) LegacyLeaderboard(ctx context.Context) (_ []model.PlayerStats, err error) {
	ctx, span := tracer.Start(ctx, "stats.LegacyLeaderboard")
	defer telemetry.End(span, &err)

	return s.leaderboard(ctx, keyspace.Legacy())
}

// PlayerStats returns the ranked row of one player on a board
func (s *Service) PlayerStats(ctx context.Context, slug, name string) (_ *model.PlayerStats, err error) {
	ctx, span := tracer.Start(ctx, "stats.PlayerStats")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if _, err := s.storage.GetBoard(ctx, slug); err != nil {
		return nil, err
	}

	rows, err := s.leaderboard(ctx, keyspace.Board(slug))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i], nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Service) leaderboard(ctx context.Context, ns keyspace.Namespace) ([]model.PlayerStats, error) {
	aggregates, err := s.storage.ListPlayerAggregates(ctx, ns)
	if err != nil {
		s.logger.Error("failed to read player aggregates",
			slog.String("namespace", ns.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return Rank(aggregates), nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Leaderboard(ctx context.Context, slug string) ([]model.PlayerStats, error)
	LegacyLeaderboard(ctx context.Context) ([]model.PlayerStats, error)
	PlayerStats(ctx context.Context, slug, name string) (*model.PlayerStats, error)
}

var _ ServiceInterface = (*Service)(nil)
