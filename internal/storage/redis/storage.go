package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/catan-leaderboard/internal/keyspace"
	"github.com/mcoot/catan-leaderboard/internal/model"
	"github.com/mcoot/catan-leaderboard/internal/storage"
)

// Player aggregate hash fields, shared with the legacy deployment
const (
	fieldTotalPoints = "totalPoints"
	fieldGamesPlayed = "gamesPlayed"
	fieldWins        = "wins"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, model.Upstream(err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	defaults := DefaultConfig()
	if cfg.MaxTxRetries <= 0 {
		cfg.MaxTxRetries = defaults.MaxTxRetries
	}
	if cfg.DeleteSweeps <= 0 {
		cfg.DeleteSweeps = defaults.DeleteSweeps
	}
	if cfg.ScanCount <= 0 {
		cfg.ScanCount = defaults.ScanCount
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks the connection
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	return model.Upstream(s.client.Ping(ctx).Err())
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Board operations

// CreateBoard writes the board record with SETNX so concurrent creations of
// the same slug resolve to exactly one winner.
func (s *Storage) CreateBoard(ctx context.Context, board *model.Board) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := json.Marshal(board)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, keyspace.InfoKey(board.Slug), data, 0).Result()
	if err != nil {
		return model.Upstream(err)
	}
	if !created {
		return model.ErrBoardExists
	}
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, slug string) (*model.Board, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, keyspace.InfoKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, model.Upstream(err)
	}

	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) ListBoards(ctx context.Context) ([]*model.Board, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	candidates, err := s.scanKeys(ctx, keyspace.InfoPattern())
	if err != nil {
		return nil, model.Upstream(err)
	}

	// Entity keys whose player name ends in ":info" also match the pattern
	keys := make([]string, 0, len(candidates))
	for _, key := range candidates {
		if _, ok := keyspace.ParseInfoKey(key); ok {
			keys = append(keys, key)
		}
	}

	values, err := s.mget(ctx, keys)
	if err != nil {
		return nil, model.Upstream(err)
	}

	boards := make([]*model.Board, 0, len(values))
	for _, val := range values {
		var board model.Board
		if err := json.Unmarshal([]byte(val), &board); err != nil {
			continue // Skip invalid data
		}
		boards = append(boards, &board)
	}
	return boards, nil
}

// DeleteBoard removes every key under the board prefix.
//
// The first pass deletes the board record and every key visible to SCAN in
// one MULTI/EXEC, so a failure there leaves the board untouched. Writers
// WATCH the board record, so once it is gone no new entity key can commit;
// the sweep only removes keys from transactions that committed between the
// scan and the first delete. A sweep that fails is retried; if every attempt
// fails the error wraps model.ErrPartialDelete.
func (s *Storage) DeleteBoard(ctx context.Context, slug string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	infoKey := keyspace.InfoKey(slug)
	pattern := keyspace.Pattern(keyspace.BoardPrefix(slug))

	exists, err := s.client.Exists(ctx, infoKey).Result()
	if err != nil {
		return model.Upstream(err)
	}
	if exists == 0 {
		return model.ErrBoardNotFound
	}

	keys, err := s.scanKeys(ctx, pattern)
	if err != nil {
		return model.Upstream(err)
	}
	if err := s.deleteKeys(ctx, appendMissing(keys, infoKey)); err != nil {
		return model.Upstream(err)
	}

	var lastErr error
	for sweep := 0; sweep < s.cfg.DeleteSweeps; sweep++ {
		if lastErr = s.sweepBoard(ctx, infoKey, pattern); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %w", model.ErrPartialDelete, slug, lastErr)
}

// sweepBoard deletes keys left under a deleted board's prefix. The board
// record is WATCHed: once a new board claims the slug, the keys under the
// prefix belong to it and are left alone.
func (s *Storage) sweepBoard(ctx context.Context, infoKey, pattern string) error {
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, infoKey).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		leftover, err := s.scanKeys(ctx, pattern)
		if err != nil {
			return err
		}
		if len(leftover) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, leftover...)
			return nil
		})
		return err
	}, infoKey)
}

// Ledger operations

// AppendGame stores the game record and applies the aggregate increments in
// one MULTI/EXEC. Each aggregate field changes through HINCRBY, never a
// read-modify-write, so concurrent games on the same board cannot lose updates.
func (s *Storage) AppendGame(ctx context.Context, ns keyspace.Namespace, game *model.GameRecord, deltas []model.AggregateDelta) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.writeInNamespace(ctx, ns, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ns.GameKey(string(game.ID)), data, 0)
		for _, d := range deltas {
			key := ns.PlayerKey(d.Name)
			pipe.HIncrBy(ctx, key, fieldTotalPoints, d.TotalPoints)
			pipe.HIncrBy(ctx, key, fieldGamesPlayed, d.GamesPlayed)
			pipe.HIncrBy(ctx, key, fieldWins, d.Wins)
		}
		return nil
	})
}

func (s *Storage) ListGames(ctx context.Context, ns keyspace.Namespace) ([]*model.GameRecord, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	keys, err := s.scanKeys(ctx, keyspace.Pattern(ns.GamePrefix()))
	if err != nil {
		return nil, model.Upstream(err)
	}

	values, err := s.mget(ctx, keys)
	if err != nil {
		return nil, model.Upstream(err)
	}

	games := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		var game model.GameRecord
		if err := json.Unmarshal([]byte(val), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}
	return games, nil
}

// Aggregate operations

func (s *Storage) ListPlayerAggregates(ctx context.Context, ns keyspace.Namespace) ([]model.PlayerAggregate, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	keys, err := s.scanKeys(ctx, keyspace.Pattern(ns.PlayerPrefix()))
	if err != nil {
		return nil, model.Upstream(err)
	}
	if len(keys) == 0 {
		return []model.PlayerAggregate{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, model.Upstream(err)
	}

	aggregates := make([]model.PlayerAggregate, 0, len(keys))
	for i, key := range keys {
		name, ok := ns.PlayerName(key)
		if !ok {
			continue
		}
		fields := cmds[i].Val()
		if len(fields) == 0 {
			continue // Deleted between scan and read
		}
		aggregates = append(aggregates, aggregateFromHash(name, fields))
	}
	return aggregates, nil
}

func (s *Storage) GetPlayerAggregate(ctx context.Context, ns keyspace.Namespace, name string) (*model.PlayerAggregate, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	fields, err := s.client.HGetAll(ctx, ns.PlayerKey(name)).Result()
	if err != nil {
		return nil, model.Upstream(err)
	}
	if len(fields) == 0 {
		return nil, model.ErrPlayerNotFound
	}

	agg := aggregateFromHash(name, fields)
	return &agg, nil
}

// Profile link operations

func (s *Storage) SetProfileLink(ctx context.Context, ns keyspace.Namespace, name, assetURL string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.writeInNamespace(ctx, ns, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ns.ProfileKey(name), assetURL, 0)
		return nil
	})
}

func (s *Storage) GetProfileLink(ctx context.Context, ns keyspace.Namespace, name string) (string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	val, err := s.client.Get(ctx, ns.ProfileKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrProfileNotFound
		}
		return "", model.Upstream(err)
	}
	return decodeAssetURL(val), nil
}

func (s *Storage) ListProfileLinks(ctx context.Context, ns keyspace.Namespace) (map[string]string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	keys, err := s.scanKeys(ctx, keyspace.Pattern(ns.ProfilePrefix()))
	if err != nil {
		return nil, model.Upstream(err)
	}
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, model.Upstream(err)
	}

	links := make(map[string]string, len(keys))
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Deleted between scan and read
		}
		if name, ok := ns.ProfileName(keys[i]); ok {
			links[name] = decodeAssetURL(str)
		}
	}
	return links, nil
}

// writeInNamespace runs write inside MULTI/EXEC. For board namespaces the
// board record is WATCHed and must exist, so a board deleted concurrently
// aborts the write instead of leaving orphaned keys.
func (s *Storage) writeInNamespace(ctx context.Context, ns keyspace.Namespace, write func(redis.Pipeliner) error) error {
	if ns.IsLegacy() {
		_, err := s.client.TxPipelined(ctx, write)
		return model.Upstream(err)
	}

	infoKey := keyspace.InfoKey(ns.Slug())
	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, infoKey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return model.ErrBoardNotFound
		}
		_, err = tx.TxPipelined(ctx, write)
		return err
	}

	for attempt := 0; attempt < s.cfg.MaxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, infoKey)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, model.ErrBoardNotFound):
			return err
		default:
			return model.Upstream(err)
		}
	}
	return model.Upstream(fmt.Errorf("write to %s: %w", ns, redis.TxFailedErr))
}

// scanKeys collects every key matching pattern. SCAN may repeat keys, so the
// result is deduplicated.
func (s *Storage) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	keys := []string{}

	iter := s.client.Scan(ctx, 0, pattern, s.cfg.ScanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// mget fetches string values, dropping keys that disappeared since they were listed
func (s *Storage) mget(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(values))
	for _, val := range values {
		if str, ok := val.(string); ok {
			result = append(result, str)
		}
	}
	return result, nil
}

func (s *Storage) deleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

func (s *Storage) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}

func aggregateFromHash(name string, fields map[string]string) model.PlayerAggregate {
	return model.PlayerAggregate{
		Name:        name,
		TotalPoints: parseCounter(fields[fieldTotalPoints]),
		GamesPlayed: parseCounter(fields[fieldGamesPlayed]),
		Wins:        parseCounter(fields[fieldWins]),
	}
}

// parseCounter treats a missing or malformed field as 0
func parseCounter(val string) int64 {
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// decodeAssetURL unwraps values written as JSON strings by the legacy client
func decodeAssetURL(val string) string {
	if !strings.HasPrefix(val, `"`) {
		return val
	}
	var url string
	if err := json.Unmarshal([]byte(val), &url); err != nil {
		return val
	}
	return url
}

func appendMissing(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}
