package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	redisstorage "github.com/mcoot/catan-leaderboard/internal/storage/redis"
	"github.com/mcoot/catan-leaderboard/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger(), Config{BcryptCost: bcrypt.MinCost})
	s.ctx = context.Background()

	hash, err := s.service.HashSecret("sheep-for-wood")
	s.Require().NoError(err)
	s.Require().NoError(s.storage.CreateBoard(s.ctx, &model.Board{
		Name:         "River Traders",
		Slug:         "river-traders",
		PasswordHash: hash,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}))
}

// HashSecret tests

func (s *ServiceSuite) TestHashSecretIsNotPlaintext() {
	hash, err := s.service.HashSecret("sheep-for-wood")
	s.Require().NoError(err)
	s.NotEqual("sheep-for-wood", hash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(hash), []byte("sheep-for-wood")))
}

// Verify tests

func (s *ServiceSuite) TestVerifyCorrectSecret() {
	ok, err := s.service.Verify(s.ctx, "river-traders", "sheep-for-wood")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestVerifyWrongSecret() {
	ok, err := s.service.Verify(s.ctx, "river-traders", "ore-for-wheat")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestVerifyMissingBoardIsIndistinguishable() {
	ok, err := s.service.Verify(s.ctx, "no-such-board", "sheep-for-wood")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestVerifyBlankSecret() {
	ok, err := s.service.Verify(s.ctx, "river-traders", "")
	s.Require().NoError(err)
	s.False(ok)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	s.NoError(s.service.Authenticate(s.ctx, "river-traders", "sheep-for-wood"))
}

func (s *ServiceSuite) TestAuthenticateDistinguishesMissingBoard() {
	err := s.service.Authenticate(s.ctx, "no-such-board", "sheep-for-wood")
	s.ErrorIs(err, model.ErrBoardNotFound)

	err = s.service.Authenticate(s.ctx, "river-traders", "ore-for-wheat")
	s.ErrorIs(err, model.ErrInvalidSecret)
	s.ErrorIs(err, model.ErrUnauthorized)
}

func (s *ServiceSuite) TestAuthenticateBlankSecret() {
	err := s.service.Authenticate(s.ctx, "river-traders", "")
	s.ErrorIs(err, model.ErrMissingSecret)
	s.ErrorIs(err, model.ErrValidation)
}

// Require tests

func (s *ServiceSuite) TestRequireHidesBoardExistence() {
	s.NoError(s.service.Require(s.ctx, "river-traders", "sheep-for-wood"))
	s.ErrorIs(s.service.Require(s.ctx, "river-traders", "wrong"), model.ErrInvalidSecret)
	s.ErrorIs(s.service.Require(s.ctx, "no-such-board", "wrong"), model.ErrInvalidSecret)
}

func TestRequireSurfacesUpstreamFailure(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	store := redisstorage.NewWithClient(client, redisstorage.DefaultConfig())
	service := New(store, testutil.NopLogger(), Config{BcryptCost: bcrypt.MinCost})

	mini.Close()

	err := service.Require(context.Background(), "river-traders", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUpstream)
	assert.NotErrorIs(t, err, model.ErrUnauthorized)
}
