package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/catan-leaderboard/internal/assets"
	"github.com/mcoot/catan-leaderboard/internal/dependencies/mocks"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	"github.com/mcoot/catan-leaderboard/internal/testutil"
)

// fakePresigner records the requests it signs
type fakePresigner struct {
	keys []string
	err  error
}

func (f *fakePresigner) PresignUpload(ctx context.Context, key, contentType string, size int64) (*assets.Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, key)
	return &assets.Upload{
		Key:         key,
		UploadURL:   "https://upload.example.com/" + key + "?sig=x",
		AssetURL:    "https://cdn.example.com/" + key,
		ContentType: contentType,
	}, nil
}

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	presigner *fakePresigner
	ids       *mocks.MockIDGenerator
	auth      *auth.Service
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.presigner = &fakePresigner{}
	s.ids = mocks.NewMockIDGenerator()
	s.auth = auth.New(s.storage, testutil.NopLogger(), auth.Config{BcryptCost: bcrypt.MinCost})
	s.service = New(s.storage, s.auth, s.presigner, s.ids, testutil.NopLogger())
	s.ctx = context.Background()

	hash, err := s.auth.HashSecret("pw")
	s.Require().NoError(err)
	s.Require().NoError(s.storage.CreateBoard(s.ctx, &model.Board{
		Name:         "River Traders",
		Slug:         "river-traders",
		PasswordHash: hash,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}))
}

// Set tests

func (s *ServiceSuite) TestSetAndGet() {
	link, err := s.service.Set(s.ctx, "river-traders", " Alice ", "https://cdn.example.com/a.png", "pw")
	s.Require().NoError(err)
	s.Equal("Alice", link.PlayerName)

	url, err := s.service.Get(s.ctx, "river-traders", "Alice")
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/a.png", url)
}

func (s *ServiceSuite) TestSetRequiresPassword() {
	_, err := s.service.Set(s.ctx, "river-traders", "Alice", "https://cdn.example.com/a.png", "wrong")
	s.ErrorIs(err, model.ErrUnauthorized)

	_, err = s.service.Get(s.ctx, "river-traders", "Alice")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *ServiceSuite) TestSetValidation() {
	_, err := s.service.Set(s.ctx, "river-traders", "  ", "https://cdn.example.com/a.png", "pw")
	s.ErrorIs(err, model.ErrMissingPlayerName)

	for _, bad := range []string{"", "not a url", "/relative/path.png", "ftp://host/a.png", "https://"} {
		_, err = s.service.Set(s.ctx, "river-traders", "Alice", bad, "pw")
		s.ErrorIs(err, model.ErrInvalidAssetURL, bad)
	}
}

func (s *ServiceSuite) TestListAll() {
	_, err := s.service.Set(s.ctx, "river-traders", "Alice", "https://cdn.example.com/a.png", "pw")
	s.Require().NoError(err)
	_, err = s.service.Set(s.ctx, "river-traders", "Bob", "https://cdn.example.com/b.mp4", "pw")
	s.Require().NoError(err)

	links, err := s.service.ListAll(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal(map[string]string{
		"Alice": "https://cdn.example.com/a.png",
		"Bob":   "https://cdn.example.com/b.mp4",
	}, links)
}

func (s *ServiceSuite) TestListAllUnknownBoard() {
	_, err := s.service.ListAll(s.ctx, "missing")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

// RequestUpload tests

func (s *ServiceSuite) TestRequestUpload() {
	s.ids.Queue("0190-abc")

	upload, err := s.service.RequestUpload(s.ctx, "river-traders", "Alice", "image/png", 4096, "pw")
	s.Require().NoError(err)
	s.Equal("profiles/river-traders/0190-abc.png", upload.Key)
	s.Equal("https://cdn.example.com/profiles/river-traders/0190-abc.png", upload.AssetURL)
}

func (s *ServiceSuite) TestRequestUploadValidation() {
	_, err := s.service.RequestUpload(s.ctx, "river-traders", "Alice", "application/zip", 4096, "pw")
	s.ErrorIs(err, model.ErrUnsupportedMedia)

	_, err = s.service.RequestUpload(s.ctx, "river-traders", "Alice", "video/mp4", assets.MaxUploadSize+1, "pw")
	s.ErrorIs(err, model.ErrMediaTooLarge)

	_, err = s.service.RequestUpload(s.ctx, "river-traders", "Alice", "image/png", 10, "wrong")
	s.ErrorIs(err, model.ErrUnauthorized)

	s.Empty(s.presigner.keys)
}

func (s *ServiceSuite) TestRequestUploadPresignFailureIsUpstream() {
	s.presigner.err = errors.New("credentials expired")

	_, err := s.service.RequestUpload(s.ctx, "river-traders", "Alice", "image/png", 10, "pw")
	s.ErrorIs(err, model.ErrUpstream)
}

func (s *ServiceSuite) TestRequestUploadUnconfigured() {
	service := New(s.storage, s.auth, nil, s.ids, testutil.NopLogger())

	_, err := service.RequestUpload(s.ctx, "river-traders", "Alice", "image/png", 10, "pw")
	s.ErrorIs(err, model.ErrUploadsUnavailable)
}
