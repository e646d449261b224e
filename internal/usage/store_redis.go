package usage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "token_usage:"
	redisKeyTTL        = 35 * 24 * time.Hour
)

type redisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore constructs a store keeping one counter key per date.
func NewRedisStore(client redis.UniversalClient) *redisStore {
	return &redisStore{client: client, prefix: defaultRedisPrefix}
}

func (s *redisStore) key(date string) string {
	return s.prefix + date
}

func (s *redisStore) Add(ctx context.Context, date string, tokens int) (int, error) {
	key := s.key(date)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.IncrBy(ctx, key, int64(tokens))
		pipe.Expire(ctx, key, redisKeyTTL)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (s *redisStore) Get(ctx context.Context, date string) (int, error) {
	total, err := s.client.Get(ctx, s.key(date)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}
