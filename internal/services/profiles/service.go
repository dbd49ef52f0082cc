package profiles

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mcoot/catan-leaderboard/internal/assets"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/idgen"
	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/storage"
	"github.com/mcoot/catan-leaderboard/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/mcoot/catan-leaderboard/internal/services/profiles")

// Service links board-scoped player names to uploaded media
type Service struct {
	storage storage.Storage
	auth    *auth.Service
	uploads assets.Presigner
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new profiles Service. uploads may be nil, in which case
// RequestUpload reports model.ErrUploadsUnavailable.
func New(storage storage.Storage, auth *auth.Service, uploads assets.Presigner, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		auth:    auth,
		uploads: uploads,
		ids:     ids,
		logger:  logger,
	}
}

// Set links a player to an asset URL, replacing any previous link
func (s *Service) Set(ctx context.Context, slug, name, assetURL, secret string) (_ *model.ProfileLink, err error) {
	ctx, span := tracer.Start(ctx, "profiles.Set")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if err := s.auth.Require(ctx, slug, secret); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrMissingPlayerName
	}
	if !validAssetURL(assetURL) {
		return nil, model.ErrInvalidAssetURL
	}

	if err := s.storage.SetProfileLink(ctx, keyspace.Board(slug), name, assetURL); err != nil {
		return nil, err
	}

	s.logger.Info("profile link set", slog.String("board", slug), slog.String("player", name))
	return &model.ProfileLink{PlayerName: name, AssetURL: assetURL}, nil
}

// Get returns the asset URL linked to a player
func (s *Service) Get(ctx context.Context, slug, name string) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "profiles.Get")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if _, err := s.storage.GetBoard(ctx, slug); err != nil {
		return "", err
	}
	return s.storage.GetProfileLink(ctx, keyspace.Board(slug), name)
}

// ListAll returns every profile link of a board, keyed by player name
func (s *Service) ListAll(ctx context.Context, slug string) (_ map[string]string, err error) {
	ctx, span := tracer.Start(ctx, "profiles.ListAll")
	span.SetAttributes(attribute.String("board", slug))
	defer telemetry.End(span, &err)

	if _, err := s.storage.GetBoard(ctx, slug); err != nil {
		return nil, err
	}
	return s.storage.ListProfileLinks(ctx, keyspace.Board(slug))
}

// ListLegacy returns the profile links of the ungrouped legacy namespace
func (s *Service) ListLegacy(ctx context.Context) (_ map[string]string, err error) {
	ctx, span := tracer.Start(ctx, "profiles.ListLegacy")
	defer telemetry.End(span, &err)

	return s.storage.ListProfileLinks(ctx, keyspace.Legacy())
}

// RequestUpload issues a presigned upload for a player's profile media. The
// client uploads the file itself and then stores the returned asset URL
// with Set.
func (s *Service) RequestUpload(ctx context.Context, slug, name, contentType string, size int64, secret string) (_ *assets.Upload, err error) {
	ctx, span := tracer.Start(ctx, "profiles.RequestUpload")
	span.SetAttributes(attribute.String("board", slug), attribute.String("content_type", contentType))
	defer telemetry.End(span, &err)

	if s.uploads == nil {
		return nil, model.ErrUploadsUnavailable
	}
	if err := s.auth.Require(ctx, slug, secret); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrMissingPlayerName
	}
	if err := assets.ValidateMedia(contentType, size); err != nil {
		return nil, err
	}

	key := assets.ObjectKey(slug, s.ids.NewID(), contentType)
	upload, err := s.uploads.PresignUpload(ctx, key, contentType, size)
	if err != nil {
		s.logger.Error("failed to presign upload",
			slog.String("board", slug),
			slog.String("error", err.Error()),
		)
		return nil, model.Upstream(err)
	}
	return upload, nil
}

func validAssetURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ServiceInterface for dependency injection
type ServiceInterface interface {
	Set(ctx context.Context, slug, name, assetURL, secret string) (*model.ProfileLink, error)
	Get(ctx context.Context, slug, name string) (string, error)
	ListAll(ctx context.Context, slug string) (map[string]string, error)
	ListLegacy(ctx context.Context) (map[string]string, error)
	RequestUpload(ctx context.Context, slug, name, contentType string, size int64, secret string) (*assets.Upload, error)
}

var _ ServiceInterface = (*Service)(nil)
