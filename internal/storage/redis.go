package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chronofy:"

// RedisRepository keeps collections in a redis instance. Useful when
// the planner runs alongside an existing redis, or for sharing state
// between restarts of a containerized deployment.
type RedisRepository struct {
	client *redis.Client
}

// OpenRedis connects to addr and verifies the connection with a ping.
func OpenRedis(ctx context.Context, addr string) (*RedisRepository, error) {
	if addr == "" {
		return nil, errors.New("redis addr is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisRepository{client: client}, nil
}

func (r *RedisRepository) Load(ctx context.Context, kind Kind) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+string(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisRepository) Save(ctx context.Context, kind Kind, data []byte) error {
	return r.client.Set(ctx, redisKeyPrefix+string(kind), data, 0).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
