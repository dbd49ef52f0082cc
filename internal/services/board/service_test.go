package board

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/catan-leaderboard/internal/dependencies/mocks"
	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/services/auth"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	"github.com/mcoot/catan-leaderboard/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	logs    *testutil.LogBuffer
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	authService := auth.New(s.storage, testutil.NopLogger(), auth.Config{BcryptCost: bcrypt.MinCost})
	logger, logs := testutil.CaptureLogger()
	s.logs = logs
	s.service = New(s.storage, authService, s.clock, logger)
	s.ctx = context.Background()
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	board, err := s.service.Create(s.ctx, "  River Traders ", "river-traders", "sheep-for-wood")
	s.Require().NoError(err)

	s.Equal("River Traders", board.Name)
	s.Equal("river-traders", board.Slug)
	s.Equal(s.clock.Now(), board.CreatedAt)
	s.NotEqual("sheep-for-wood", board.PasswordHash)
}

func (s *ServiceSuite) TestCreateIsPersisted() {
	_, err := s.service.Create(s.ctx, "River Traders", "river-traders", "sheep-for-wood")
	s.Require().NoError(err)

	board, err := s.service.Get(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal("River Traders", board.Name)
}

func (s *ServiceSuite) TestCreateValidation() {
	cases := []struct {
		name, slug, secret string
		want               error
	}{
		{"", "ok", "pw", model.ErrMissingName},
		{"   ", "ok", "pw", model.ErrMissingName},
		{"Board", "", "pw", model.ErrInvalidSlug},
		{"Board", "River", "pw", model.ErrInvalidSlug},
		{"Board", "river traders", "pw", model.ErrInvalidSlug},
		{"Board", "river:traders", "pw", model.ErrInvalidSlug},
		{"Board", "river_traders", "pw", model.ErrInvalidSlug},
		{"Board", "ok", "", model.ErrMissingSecret},
	}
	for _, tc := range cases {
		_, err := s.service.Create(s.ctx, tc.name, tc.slug, tc.secret)
		s.ErrorIs(err, tc.want, "name=%q slug=%q", tc.name, tc.slug)
		s.ErrorIs(err, model.ErrValidation)
	}

	boards, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(boards)
}

func (s *ServiceSuite) TestCreateDuplicateSlug() {
	_, err := s.service.Create(s.ctx, "First", "river-traders", "pw")
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, "Second", "river-traders", "pw")
	s.ErrorIs(err, model.ErrBoardExists)
	s.ErrorIs(err, model.ErrConflict)
}

func (s *ServiceSuite) TestConcurrentCreateHasOneWinner() {
	const attempts = 10

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.service.Create(s.ctx, fmt.Sprintf("Board %d", i), "contested", "pw")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrConflict)
		}
	}
	s.Equal(1, succeeded)
}

// Get tests

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrBoardNotFound)

	_, err = s.service.Get(s.ctx, "Not A Slug")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

// List tests

func (s *ServiceSuite) TestListNewestFirst() {
	_, _ = s.service.Create(s.ctx, "Oldest", "oldest", "pw")
	s.clock.Advance(time.Hour)
	_, _ = s.service.Create(s.ctx, "Newest", "newest", "pw")
	s.clock.Advance(-30 * time.Minute)
	_, _ = s.service.Create(s.ctx, "Middle", "middle", "pw")

	boards, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(boards, 3)
	s.Equal("newest", boards[0].Slug)
	s.Equal("middle", boards[1].Slug)
	s.Equal("oldest", boards[2].Slug)
}

// Delete tests

func (s *ServiceSuite) TestDeleteRemovesBoardAndContents() {
	_, err := s.service.Create(s.ctx, "River Traders", "river-traders", "pw")
	s.Require().NoError(err)
	ns := keyspace.Board("river-traders")
	s.Require().NoError(s.storage.AppendGame(s.ctx, ns, &model.GameRecord{ID: "g1"},
		[]model.AggregateDelta{{Name: "A", TotalPoints: 10, GamesPlayed: 1, Wins: 1}}))

	s.Require().NoError(s.service.Delete(s.ctx, "river-traders", "pw"))

	_, err = s.service.Get(s.ctx, "river-traders")
	s.ErrorIs(err, model.ErrBoardNotFound)
	aggs, err := s.storage.ListPlayerAggregates(s.ctx, ns)
	s.Require().NoError(err)
	s.Empty(aggs)
}

func (s *ServiceSuite) TestDeleteWrongPassword() {
	_, err := s.service.Create(s.ctx, "River Traders", "river-traders", "pw")
	s.Require().NoError(err)

	err = s.service.Delete(s.ctx, "river-traders", "nope")
	s.ErrorIs(err, model.ErrUnauthorized)

	_, err = s.service.Get(s.ctx, "river-traders")
	s.NoError(err)
}

func (s *ServiceSuite) TestDeleteUnknownBoardIsUnauthorized() {
	err := s.service.Delete(s.ctx, "missing", "pw")
	s.ErrorIs(err, model.ErrUnauthorized)
}

func (s *ServiceSuite) TestLifecycleIsLogged() {
	_, err := s.service.Create(s.ctx, "River Traders", "river-traders", "sheep-for-wood")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Delete(s.ctx, "river-traders", "sheep-for-wood"))

	var msgs []string
	for _, entry := range s.logs.Entries() {
		s.Equal("river-traders", entry["board"])
		msgs = append(msgs, entry["msg"].(string))
	}
	s.Equal([]string{"board created", "board deleted"}, msgs)
}
