package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) createBoard(slug string) {
	err := s.storage.CreateBoard(s.ctx, &model.Board{
		Name:      "Board " + slug,
		Slug:      slug,
		CreatedAt: time.Now(),
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) appendWin(ns keyspace.Namespace, id, winner, loser string, loserPoints int) {
	err := s.storage.AppendGame(s.ctx, ns, &model.GameRecord{
		ID: model.GameID(id),
		Players: []model.Participant{
			{Name: winner, Points: 10},
			{Name: loser, Points: loserPoints},
		},
		Winner: winner,
	}, []model.AggregateDelta{
		{Name: winner, TotalPoints: 10, GamesPlayed: 1, Wins: 1},
		{Name: loser, TotalPoints: int64(loserPoints), GamesPlayed: 1},
	})
	s.Require().NoError(err)
}

// Board tests

func (s *StorageSuite) TestCreateAndGetBoard() {
	s.createBoard("river-traders")

	board, err := s.storage.GetBoard(s.ctx, "river-traders")
	s.Require().NoError(err)
	s.Equal("Board river-traders", board.Name)
}

func (s *StorageSuite) TestCreateBoardConflict() {
	s.createBoard("river-traders")

	err := s.storage.CreateBoard(s.ctx, &model.Board{Name: "Other", Slug: "river-traders"})
	s.ErrorIs(err, model.ErrBoardExists)
}

func (s *StorageSuite) TestConcurrentCreateBoardHasOneWinner() {
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.storage.CreateBoard(s.ctx, &model.Board{Slug: "contested"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(1, created)
}

func (s *StorageSuite) TestListBoards() {
	s.createBoard("a")
	s.createBoard("b")

	boards, err := s.storage.ListBoards(s.ctx)
	s.Require().NoError(err)
	s.Len(boards, 2)
}

// Ledger tests

func (s *StorageSuite) TestAppendGameUpdatesAggregates() {
	s.createBoard("river-traders")
	ns := keyspace.Board("river-traders")

	s.appendWin(ns, "g1", "Alice", "Bob", 7)
	s.appendWin(ns, "g2", "Bob", "Alice", 9)

	alice, err := s.storage.GetPlayerAggregate(s.ctx, ns, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerAggregate{Name: "Alice", TotalPoints: 19, GamesPlayed: 2, Wins: 1}, *alice)

	games, err := s.storage.ListGames(s.ctx, ns)
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *StorageSuite) TestAppendGameWithoutBoard() {
	err := s.storage.AppendGame(s.ctx, keyspace.Board("missing"), &model.GameRecord{ID: "g1"}, nil)
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestListGamesReturnsCopies() {
	s.createBoard("river-traders")
	ns := keyspace.Board("river-traders")
	s.appendWin(ns, "g1", "Alice", "Bob", 7)

	games, err := s.storage.ListGames(s.ctx, ns)
	s.Require().NoError(err)
	games[0].Players[0].Points = 99

	games, err = s.storage.ListGames(s.ctx, ns)
	s.Require().NoError(err)
	s.Equal(10, games[0].Players[0].Points)
}

func (s *StorageSuite) TestConcurrentAppends() {
	s.createBoard("busy")
	ns := keyspace.Board("busy")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.appendWin(ns, fmt.Sprintf("g%d", i), "Alice", "Bob", 4)
		}(i)
	}
	wg.Wait()

	alice, err := s.storage.GetPlayerAggregate(s.ctx, ns, "Alice")
	s.Require().NoError(err)
	s.Equal(int64(500), alice.TotalPoints)
	s.Equal(int64(50), alice.Wins)
}

func (s *StorageSuite) TestBoardsAreIsolated() {
	s.createBoard("a")
	s.createBoard("a-b")
	s.appendWin(keyspace.Board("a"), "g1", "Alice", "Bob", 7)

	games, err := s.storage.ListGames(s.ctx, keyspace.Board("a-b"))
	s.Require().NoError(err)
	s.Empty(games)

	aggs, err := s.storage.ListPlayerAggregates(s.ctx, keyspace.Board("a-b"))
	s.Require().NoError(err)
	s.Empty(aggs)
}

// Delete tests

func (s *StorageSuite) TestDeleteBoardCascades() {
	s.createBoard("doomed")
	s.createBoard("kept")
	doomed := keyspace.Board("doomed")
	s.appendWin(doomed, "g1", "Alice", "Bob", 7)
	s.appendWin(keyspace.Board("kept"), "g1", "Alice", "Bob", 7)
	s.Require().NoError(s.storage.SetProfileLink(s.ctx, doomed, "Alice", "https://cdn.example.com/a.png"))

	s.Require().NoError(s.storage.DeleteBoard(s.ctx, "doomed"))

	_, err := s.storage.GetBoard(s.ctx, "doomed")
	s.ErrorIs(err, model.ErrBoardNotFound)

	s.createBoard("doomed")
	games, _ := s.storage.ListGames(s.ctx, doomed)
	s.Empty(games)
	aggs, _ := s.storage.ListPlayerAggregates(s.ctx, doomed)
	s.Empty(aggs)
	links, _ := s.storage.ListProfileLinks(s.ctx, doomed)
	s.Empty(links)

	kept, err := s.storage.ListGames(s.ctx, keyspace.Board("kept"))
	s.Require().NoError(err)
	s.Len(kept, 1)
}

func (s *StorageSuite) TestDeleteBoardNotFound() {
	s.ErrorIs(s.storage.DeleteBoard(s.ctx, "missing"), model.ErrBoardNotFound)
}

// Profile tests

func (s *StorageSuite) TestProfileLinks() {
	s.createBoard("river-traders")
	ns := keyspace.Board("river-traders")

	s.Require().NoError(s.storage.SetProfileLink(s.ctx, ns, "Alice", "https://cdn.example.com/a.png"))

	url, err := s.storage.GetProfileLink(s.ctx, ns, "Alice")
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/a.png", url)

	_, err = s.storage.GetProfileLink(s.ctx, ns, "Bob")
	s.ErrorIs(err, model.ErrProfileNotFound)

	err = s.storage.SetProfileLink(s.ctx, keyspace.Board("missing"), "Alice", "https://cdn.example.com/a.png")
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestLegacyNamespaceNeedsNoBoard() {
	legacy := keyspace.Legacy()
	s.appendWin(legacy, "old-1", "Zed", "Yan", 8)

	games, err := s.storage.ListGames(s.ctx, legacy)
	s.Require().NoError(err)
	s.Len(games, 1)

	s.createBoard("river-traders")
	boardGames, err := s.storage.ListGames(s.ctx, keyspace.Board("river-traders"))
	s.Require().NoError(err)
	s.Empty(boardGames)
}
