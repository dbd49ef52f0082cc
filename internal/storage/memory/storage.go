package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Entries are keyed by their keyspace keys so prefix enumeration and cascade
// deletion behave exactly as they do against Redis.
type Storage struct {
	mu sync.RWMutex

	boards     map[string]model.Board
	games      map[string]model.GameRecord
	aggregates map[string]model.PlayerAggregate
	profiles   map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		boards:     make(map[string]model.Board),
		games:      make(map[string]model.GameRecord),
		aggregates: make(map[string]model.PlayerAggregate),
		profiles:   make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Board operations

func (s *Storage) CreateBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := keyspace.InfoKey(board.Slug)
	if _, ok := s.boards[key]; ok {
		return model.ErrBoardExists
	}
	s.boards[key] = *board
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, slug string) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[keyspace.InfoKey(slug)]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return &board, nil
}

func (s *Storage) ListBoards(ctx context.Context) ([]*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	boards := make([]*model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		board := b
		boards = append(boards, &board)
	}
	return boards, nil
}

func (s *Storage) DeleteBoard(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[keyspace.InfoKey(slug)]; !ok {
		return model.ErrBoardNotFound
	}

	prefix := keyspace.BoardPrefix(slug)
	deletePrefix(s.boards, prefix)
	deletePrefix(s.games, prefix)
	deletePrefix(s.aggregates, prefix)
	deletePrefix(s.profiles, prefix)
	return nil
}

// Ledger operations

func (s *Storage) AppendGame(ctx context.Context, ns keyspace.Namespace, game *model.GameRecord, deltas []model.AggregateDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireBoard(ns); err != nil {
		return err
	}

	record := *game
	record.Players = append([]model.Participant(nil), game.Players...)
	s.games[ns.GameKey(string(game.ID))] = record

	for _, d := range deltas {
		key := ns.PlayerKey(d.Name)
		agg := s.aggregates[key]
		agg.Name = d.Name
		agg.TotalPoints += d.TotalPoints
		agg.GamesPlayed += d.GamesPlayed
		agg.Wins += d.Wins
		s.aggregates[key] = agg
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context, ns keyspace.Namespace) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := ns.GamePrefix()
	games := []*model.GameRecord{}
	for key, g := range s.games {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		game := g
		game.Players = append([]model.Participant(nil), g.Players...)
		games = append(games, &game)
	}
	return games, nil
}

// Aggregate operations

func (s *Storage) ListPlayerAggregates(ctx context.Context, ns keyspace.Namespace) ([]model.PlayerAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	aggregates := []model.PlayerAggregate{}
	for key, agg := range s.aggregates {
		if _, ok := ns.PlayerName(key); ok {
			aggregates = append(aggregates, agg)
		}
	}
	return aggregates, nil
}

func (s *Storage) GetPlayerAggregate(ctx context.Context, ns keyspace.Namespace, name string) (*model.PlayerAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.aggregates[ns.PlayerKey(name)]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &agg, nil
}

// Profile link operations

func (s *Storage) SetProfileLink(ctx context.Context, ns keyspace.Namespace, name, assetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireBoard(ns); err != nil {
		return err
	}
	s.profiles[ns.ProfileKey(name)] = assetURL
	return nil
}

func (s *Storage) GetProfileLink(ctx context.Context, ns keyspace.Namespace, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.profiles[ns.ProfileKey(name)]
	if !ok {
		return "", model.ErrProfileNotFound
	}
	return url, nil
}

func (s *Storage) ListProfileLinks(ctx context.Context, ns keyspace.Namespace) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := make(map[string]string)
	for key, url := range s.profiles {
		if name, ok := ns.ProfileName(key); ok {
			links[name] = url
		}
	}
	return links, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// requireBoard must be called with the write lock held
func (s *Storage) requireBoard(ns keyspace.Namespace) error {
	if ns.IsLegacy() {
		return nil
	}
	if _, ok := s.boards[keyspace.InfoKey(ns.Slug())]; !ok {
		return model.ErrBoardNotFound
	}
	return nil
}

func deletePrefix[V any](m map[string]V, prefix string) {
	for key := range m {
		if strings.HasPrefix(key, prefix) {
			delete(m, key)
		}
	}
}
