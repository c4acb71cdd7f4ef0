package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
)

const defaultKeyPrefix = "world:"

type RedisOptions struct {
	Address  string
	Password string
	DB       int
	PoolSize int
	// TTL of every entry; zero keeps entries until evicted by the server.
	TTL time.Duration
	// KeyPrefix defaults to "world:".
	KeyPrefix string
}

// Redis is a WorldCache backed by a Redis server. Each entry is a string key
// <prefix><id> holding the random number.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedis connects to the server and verifies it with a PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Address, err)
	}

	return newRedisWithClient(client, opts), nil
}

func newRedisWithClient(client redis.UniversalClient, opts RedisOptions) *Redis {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &Redis{client: client, ttl: opts.TTL, prefix: prefix}
}

func (r *Redis) key(id int) string {
	return r.prefix + strconv.Itoa(id)
}

func (r *Redis) GetMany(ctx context.Context, ids []int) (map[int]entity.World, error) {
	if len(ids) == 0 {
		return map[int]entity.World{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget worlds: %w", err)
	}

	return decodeValues(ids, values), nil
}

// decodeValues pairs MGET replies with their ids, skipping nil and
// non-numeric replies.
func decodeValues(ids []int, values []any) map[int]entity.World {
	found := make(map[int]entity.World, len(ids))
	for i, v := range values {
		if i >= len(ids) {
			break
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		found[ids[i]] = entity.World{ID: ids[i], RandomNumber: n}
	}
	return found
}

func (r *Redis) SetMany(ctx context.Context, worlds []entity.World) error {
	if len(worlds) == 0 {
		return nil
	}

	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range worlds {
			pipe.Set(ctx, r.key(w.ID), w.RandomNumber, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set worlds: %w", err)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
