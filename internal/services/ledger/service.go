package ledger

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mcoot/catan-leaderboard/internal/dependencies/clock"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/idgen"
	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/services/stats"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/services/ledger")

// Service validates and records completed games
type Service struct {
	storage storage.Storage
	auth    *auth.Service
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new ledger Service
func New(storage storage.Storage, auth *auth.Service, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		auth:    auth,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Validate applies the Catan result rules to the named participants and
// returns them along with the winner. Rules are checked in a fixed order and
// the first one violated is reported.
func Validate(participants []model.Participant) ([]model.Participant, string, error) {
	named := model.NamedParticipants(participants)

	if len(named) < model.MinParticipants {
		return nil, "", model.ErrTooFewPlayers
	}

	for _, p := range named {
		if p.Points > model.WinningPoints {
			return nil, "", model.ErrTooManyPoints
		}
	}
	for _, p := range named {
		if p.Points < 0 {
			return nil, "", model.ErrNegativePoints
		}
	}

	var winners []string
	for _, p := range named {
		if p.Points == model.WinningPoints {
			winners = append(winners, p.Name)
		}
	}
	switch len(winners) {
	case 0:
		return nil, "", model.ErrNoWinner
	case 1:
	default:
		return nil, "", model.ErrMultipleWinners
	}

	seen := make(map[string]bool, len(named))
	for _, p := range named {
		if seen[p.Name] {
			return nil, "", model.ErrDuplicatePlayer
		}
		seen[p.Name] = true
	}

	return named, winners[0], nil
}

// RecordGame checks the board password, validates the result and appends it
// to the board's ledger. The record and every aggregate increment commit
// together or not at all.
func (s *Service) RecordGame(ctx context.Context, slug string, participants []model.Participant, secret string) (_ *model.GameRecord, err error) {
	ctx, span := tracer.Start(ctx, "ledger.RecordGame")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if err := s.auth.Require(ctx, slug, secret); err != nil {
		return nil, err
	}

	players, winner, err := Validate(participants)
	if err != nil {
		return nil, err
	}

	record := &model.GameRecord{
		ID:        model.GameID(s.ids.NewID()),
		BoardSlug: slug,
		Date:      s.clock.Now(),
		Players:   players,
		Winner:    winner,
	}

	if err := s.storage.AppendGame(ctx, keyspace.Board(slug), record, stats.ApplyGame(record)); err != nil {
		s.logger.Error("failed to record game",
			slog.String("board", slug),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("game recorded",
		slog.String("board", slug),
		slog.String("game_id", string(record.ID)),
		slog.String("winner", winner),
	)
	return record, nil
}

// ListGames returns a board's games, most recent first
func (s *Service) ListGames(ctx context.Context, slug string) (_ []*model.GameRecord, err error) {
	ctx, span := tracer.Start(ctx, "ledger.ListGames")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if _, err := s.storage.GetBoard(ctx, slug); err != nil {
		return nil, err
	}
	return s.listGames(ctx, keyspace.Board(slug))
}

// ListLegacyGames returns the games of the ungrouped legacy namespace
func (s *Service) ListLegacyGames(ctx context.Context) (_ []*model.GameRecord, err error) {
	ctx, span := tracer.Start(ctx, "ledger.ListLegacyGames")
	defer telemetry.End(span, &err)

	return s.listGames(ctx, keyspace.Legacy())
}

func (s *Service) listGames(ctx context.Context, ns keyspace.Namespace) ([]*model.GameRecord, error) {
	games, err := s.storage.ListGames(ctx, ns)
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.After(games[j].Date)
		}
		return games[i].ID > games[j].ID
	})
	return games, nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	RecordGame(ctx context.Context, slug string, participants []model.Participant, secret string) (*model.GameRecord, error)
	ListGames(ctx context.Context, slug string) ([]*model.GameRecord, error)
	ListLegacyGames(ctx context.Context) ([]*model.GameRecord, error)
}

var _ ServiceInterface = (*Service)(nil)
