package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage/memory"
	"github.com/mcoot/catan-leaderboard/internal/testutil"
)

func TestApplyGame(t *testing.T) {
	record := &model.GameRecord{
		Players: []model.Participant{
			{Name: "A", Points: 6},
			{Name: "B", Points: 10},
			{Name: "C", Points: 4},
		},
		Winner: "B",
	}

	assert.Equal(t, []model.AggregateDelta{
		{Name: "A", TotalPoints: 6, GamesPlayed: 1, Wins: 0},
		{Name: "B", TotalPoints: 10, GamesPlayed: 1, Wins: 1},
		{Name: "C", TotalPoints: 4, GamesPlayed: 1, Wins: 0},
	}, ApplyGame(record))
}

func TestRankBreaksTiesByName(t *testing.T) {
	rows := Rank([]model.PlayerAggregate{
		{Name: "Zoe", TotalPoints: 12, GamesPlayed: 2},
		{Name: "Bob", TotalPoints: 20, GamesPlayed: 2, Wins: 2},
		{Name: "Amy", TotalPoints: 12, GamesPlayed: 3},
		{Name: "New", TotalPoints: 0, GamesPlayed: 0},
	})

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"Bob", "Amy", "Zoe", "New"}, names)
	assert.InDelta(t, 4.0, rows[1].AveragePoints, 1e-9)
	assert.Zero(t, rows[3].AveragePoints)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

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
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.CreateBoard(s.ctx, &model.Board{
		Name:      "River Traders",
		Slug:      "river-traders",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}))
}

func (s *ServiceSuite) record(ns keyspace.Namespace, id string, winner string, players ...model.Participant) {
	game := &model.GameRecord{ID: model.GameID(id), Players: players, Winner: winner}
	s.Require().NoError(s.storage.AppendGame(s.ctx, ns, game, ApplyGame(game)))
}

func (s *ServiceSuite) TestLeaderboardRiverTraders() {
	ns := keyspace.Board("river-traders")

	s.record(ns, "g1", "A",
		model.Participant{Name: "A", Points: 10},
		model.Participant{Name: "B", Points: 7},
	)

	rows, err := s.service.Leaderboard(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal([]model.PlayerStats{
		{Rank: 1, Name: "A", TotalPoints: 10, GamesPlayed: 1, Wins: 1, AveragePoints: 10.0},
		{Rank: 2, Name: "B", TotalPoints: 7, GamesPlayed: 1, Wins: 0, AveragePoints: 7.0},
	}, rows)

	s.record(ns, "g2", "B",
		model.Participant{Name: "A", Points: 6},
		model.Participant{Name: "B", Points: 10},
		model.Participant{Name: "C", Points: 4},
	)

	rows, err = s.service.Leaderboard(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal([]model.PlayerStats{
		{Rank: 1, Name: "B", TotalPoints: 17, GamesPlayed: 2, Wins: 1, AveragePoints: 8.5},
		{Rank: 2, Name: "A", TotalPoints: 16, GamesPlayed: 2, Wins: 1, AveragePoints: 8.0},
		{Rank: 3, Name: "C", TotalPoints: 4, GamesPlayed: 1, Wins: 0, AveragePoints: 4.0},
	}, rows)
}

func (s *ServiceSuite) TestLeaderboardIsIdempotent() {
	ns := keyspace.Board("river-traders")
	s.record(ns, "g1", "A",
		model.Participant{Name: "A", Points: 10},
		model.Participant{Name: "B", Points: 7},
	)

	first, err := s.service.Leaderboard(s.ctx, "river-traders")
	s.Require().NoError(err)
	second, err := s.service.Leaderboard(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestLeaderboardEmptyBoard() {
	rows, err := s.service.Leaderboard(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *ServiceSuite) TestLeaderboardUnknownBoard() {
	_, err := s.service.Leaderboard(s.ctx, "missing")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *ServiceSuite) TestLegacyLeaderboardIgnoresBoards() {
	s.record(keyspace.Legacy(), "old", "Zed",
		model.Participant{Name: "Zed", Points: 10},
		model.Participant{Name: "Yan", Points: 3},
	)
	s.record(keyspace.Board("river-traders"), "g1", "A",
		model.Participant{Name: "A", Points: 10},
		model.Participant{Name: "B", Points: 7},
	)

	rows, err := s.service.LegacyLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Zed", rows[0].Name)
	s.Equal("Yan", rows[1].Name)
}

func (s *ServiceSuite) TestPlayerStats() {
	ns := keyspace.Board("river-traders")
	s.record(ns, "g1", "A",
		model.Participant{Name: "A", Points: 10},
		model.Participant{Name: "B", Points: 7},
	)

	row, err := s.service.PlayerStats(s.ctx, "river-traders", "B")
	s.Require().NoError(err)
	s.Equal(2, row.Rank)
	s.Equal(int64(7), row.TotalPoints)

	_, err = s.service.PlayerStats(s.ctx, "river-traders", "Nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.service.PlayerStats(s.ctx, "missing", "A")
	s.ErrorIs(err, model.ErrBoardNotFound)
}
