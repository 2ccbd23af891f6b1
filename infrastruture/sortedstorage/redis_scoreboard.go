package sortedstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisScoreboard ranks algorithms per maze dimension in a Redis sorted set
// scored by replay ticks. A companion hash maps every algorithm to the
// session that set its score.
type RedisScoreboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisScoreboard initializes a RedisScoreboard whose boards expire ttlSeconds after creation.
func NewRedisScoreboard(client *redis.Client, ttlSeconds int) (i.Scoreboard, error) {
	if client == nil {
		return nil, errors.New("scoreboard needs a redis client")
	}
	board := &RedisScoreboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record keeps score when it beats the current best of its algorithm.
// The read-compare-write runs under a distributed lock so concurrent
// simulations cannot overwrite a better score.
func (rs *RedisScoreboard) Record(ctx context.Context, score dmn.Score) error {
	key := boardKey(score.Dim)
	mutex := rs.locker.NewMutex(key + ":record_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := rs.client.ZScore(ctx, key, score.Algorithm).Result()
	if err == nil && int(current) <= score.Ticks {
		return nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	_, err = rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(score.Ticks), Member: score.Algorithm})
		pipe.HSet(ctx, sessionsKey(score.Dim), score.Algorithm, score.SessionID.String())
		return nil
	})
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if ttl, err := rs.client.TTL(ctx, key).Result(); err == nil && ttl == -1 && rs.ttl > 0 {
		_ = rs.client.Expire(ctx, key, rs.ttl).Err()
		_ = rs.client.Expire(ctx, sessionsKey(score.Dim), rs.ttl).Err()
	}
	return nil
}

// Top returns up to n entries for dim, fastest first.
func (rs *RedisScoreboard) Top(ctx context.Context, dim int, n int64) ([]dmn.Score, error) {
	entries, err := rs.client.ZRangeWithScores(ctx, boardKey(dim), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []dmn.Score{}, nil
	}

	algorithms := make([]string, len(entries))
	for idx, e := range entries {
		algorithms[idx] = e.Member.(string)
	}
	sessionIDs, err := rs.client.HMGet(ctx, sessionsKey(dim), algorithms...).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]dmn.Score, len(entries))
	for idx, e := range entries {
		scores[idx] = dmn.Score{Algorithm: algorithms[idx], Dim: dim, Ticks: int(e.Score)}
		if raw, ok := sessionIDs[idx].(string); ok {
			scores[idx].SessionID, _ = uuid.Parse(raw)
		}
	}
	return scores, nil
}

func boardKey(dim int) string {
	return fmt.Sprintf("scoreboard:%d", dim)
}

func sessionsKey(dim int) string {
	return boardKey(dim) + ":sessions"
}
