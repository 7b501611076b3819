package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockTries = 3

var ErrInvalidMember = errors.New("leaderboard member is not a player ID")

// RedisLeaderboard keeps one sorted set per board with completion ticks as
// scores, so the lowest score is the fastest run.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.Leaderboard = &RedisLeaderboard{}

// NewRedisLeaderboard creates a leaderboard on client. Boards expire ttlSeconds
// after their first entry, never when ttlSeconds is 0.
func NewRedisLeaderboard(client *redis.Client, ttlSeconds int) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	board := &RedisLeaderboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record stores ticks for player when it beats the stored score.
func (rl *RedisLeaderboard) Record(ctx context.Context, board string, player uuid.UUID, ticks int64) (bool, error) {
	mutex := rl.locker.NewMutex(board+":"+player.String()+":lock", redsync.WithTries(lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	member := player.String()
	best, err := rl.client.ZScore(ctx, board, member).Result()
	switch {
	case err == nil && best <= float64(ticks):
		return false, nil
	case err != nil && !errors.Is(err, redis.Nil):
		return false, err
	}

	if err := rl.client.ZAdd(ctx, board, redis.Z{Score: float64(ticks), Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	if rl.ttl > 0 {
		ttl, err := rl.client.TTL(ctx, board).Result()
		if err == nil && ttl == -1 {
			_ = rl.client.Expire(ctx, board, rl.ttl).Err()
		}
	}

	return true, nil
}

// Top returns the n fastest entries of board.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, n int64) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return []dmn.LeaderboardEntry{}, nil
	}
	zs, err := rl.client.ZRangeWithScores(ctx, board, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	return toEntries(zs)
}

func toEntries(zs []redis.Z) ([]dmn.LeaderboardEntry, error) {
	entries := make([]dmn.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, ErrInvalidMember
		}
		id, err := uuid.Parse(member)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMember, err)
		}
		entries = append(entries, dmn.LeaderboardEntry{PlayerID: id, Ticks: int64(z.Score)})
	}
	return entries, nil
}
