package auth

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/services/auth")

// Service verifies board passwords. It keeps no session state: the plaintext
// password is presented and re-checked on every mutating request.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
	cost    int

	// dummyHash is compared against when the board does not exist, so a
	// missing board costs the same bcrypt work as a wrong password
	dummyHash []byte
}

// Config holds configuration for the auth service
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new auth service
func New(storage storage.Storage, logger *slog.Logger, cfg Config) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("catan-leaderboard"), cfg.BcryptCost)
	if err != nil {
		// Only possible for a cost outside bcrypt's range
		cfg.BcryptCost = bcrypt.DefaultCost
		dummy, _ = bcrypt.GenerateFromPassword([]byte("catan-leaderboard"), cfg.BcryptCost)
	}
	return &Service{
		storage:   storage,
		logger:    logger,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
	}
}

// HashSecret hashes a new board password for storage
func (s *Service) HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether secret is the password of the board. A missing board
// and a wrong password both yield false; only store failures are errors.
func (s *Service) Verify(ctx context.Context, slug, secret string) (ok bool, err error) {
	ctx, span := tracer.Start(ctx, "auth.Verify")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	err = s.check(ctx, slug, secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrBoardNotFound), errors.Is(err, model.ErrInvalidSecret):
		return false, nil
	default:
		return false, err
	}
}

// Authenticate checks a password for a caller that is entitled to know
// whether the board exists. It returns model.ErrBoardNotFound for an unknown
// board and model.ErrInvalidSecret for a wrong password.
func (s *Service) Authenticate(ctx context.Context, slug, secret string) (err error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if secret == "" {
		return model.ErrMissingSecret
	}
	return s.check(ctx, slug, secret)
}

// Require gates a mutating operation. Any failure other than a store error
// is reported as model.ErrInvalidSecret, so the caller cannot learn whether
// the board exists.
func (s *Service) Require(ctx context.Context, slug, secret string) error {
	ok, err := s.Verify(ctx, slug, secret)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("rejected board credential", slog.String("board", slug))
		return model.ErrInvalidSecret
	}
	return nil
}

func (s *Service) check(ctx context.Context, slug, secret string) error {
	board, err := s.storage.GetBoard(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrBoardNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
		}
		return err
	}
	if secret == "" {
		return model.ErrInvalidSecret
	}
	if err := bcrypt.CompareHashAndPassword([]byte(board.PasswordHash), []byte(secret)); err != nil {
		return model.ErrInvalidSecret
	}
	return nil
}
