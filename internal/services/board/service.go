package board

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mcoot/catan-leaderboard/internal/dependencies/clock"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/services/board")

// Service is the board registry: it creates, looks up, lists and deletes boards
type Service struct {
	storage storage.Storage
	auth    *auth.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new board Service
func New(storage storage.Storage, auth *auth.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		auth:    auth,
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a new board. The slug is claimed atomically by the store,
// so of several concurrent creations for one slug exactly one succeeds.
func (s *Service) Create(ctx context.Context, name, slug, secret string) (_ *model.Board, err error) {
	ctx, span := tracer.Start(ctx, "board.Create")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	name = strings.TrimSpace(name)
	if err := ValidateNew(name, slug, secret); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		Name:         name,
		Slug:         slug,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateBoard(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("board created", slog.String("board", slug))
	return board, nil
}

// ValidateNew checks the fields of a board about to be created
func ValidateNew(name, slug, secret string) error {
	if strings.TrimSpace(name) == "" {
		return model.ErrMissingName
	}
	if !model.ValidSlug(slug) {
		return model.ErrInvalidSlug
	}
	if secret == "" {
		return model.ErrMissingSecret
	}
	return nil
}

// Get returns the board with the given slug
func (s *Service) Get(ctx context.Context, slug string) (_ *model.Board, err error) {
	ctx, span := tracer.Start(ctx, "board.Get")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if !model.ValidSlug(slug) {
		return nil, model.ErrBoardNotFound
	}
	return s.storage.GetBoard(ctx, slug)
}

// List returns every board, newest first
func (s *Service) List(ctx context.Context) (_ []*model.Board, err error) {
	ctx, span := tracer.Start(ctx, "board.List")
	defer telemetry.End(span, &err)

	boards, err := s.storage.ListBoards(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(boards, func(i, j int) bool {
		if !boards[i].CreatedAt.Equal(boards[j].CreatedAt) {
			return boards[i].CreatedAt.After(boards[j].CreatedAt)
		}
		return boards[i].Slug < boards[j].Slug
	})
	return boards, nil
}

// Delete removes the board and everything recorded under it. The password is
// checked first, so an unknown board reports model.ErrInvalidSecret exactly
// like a wrong password. model.ErrBoardNotFound is only returned when the
// board disappears after the check.
func (s *Service) Delete(ctx context.Context, slug, secret string) (err error) {
	ctx, span := tracer.Start(ctx, "board.Delete")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if err := s.auth.Require(ctx, slug, secret); err != nil {
		return err
	}

	if err := s.storage.DeleteBoard(ctx, slug); err != nil {
		if errors.Is(err, model.ErrPartialDelete) {
			s.logger.Error("board partially deleted",
				slog.String("board", slug),
				slog.String("error", err.Error()),
			)
		}
		return err
	}

	s.logger.Info("board deleted", slog.String("board", slug))
	return nil
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, name, slug, secret string) (*model.Board, error)
	Get(ctx context.Context, slug string) (*model.Board, error)
	List(ctx context.Context) ([]*model.Board, error)
	Delete(ctx context.Context, slug, secret string) error
}

var _ ServiceInterface = (*Service)(nil)
