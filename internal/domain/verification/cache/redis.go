package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"pralay-server-go/internal/domain/verification/model"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis builds a redis-backed verdict cache. Redis handles capacity via
// TTL expiry rather than explicit FIFO eviction.
func NewRedis(cfg Config) (Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "verify:verdict:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &redisStore{client: client, ttl: ttl, prefix: prefix}, nil
}

func (s *redisStore) key(k string) string {
	return s.prefix + k
}

func (s *redisStore) Get(ctx context.Context, key string) (*model.Verdict, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var verdict model.Verdict
	if err := sonic.Unmarshal(data, &verdict); err != nil {
		return nil, false, err
	}
	return &verdict, true, nil
}

func (s *redisStore) Put(ctx context.Context, key string, verdict *model.Verdict) error {
	data, err := sonic.Marshal(verdict)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), data, s.ttl).Err()
}

func (s *redisStore) Stats(ctx context.Context) (map[string]any, error) {
	count, err := s.client.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":    "redis",
		"entries": count,
		"prefix":  s.prefix,
	}, nil
}

func (s *redisStore) Close(_ context.Context) error {
	return s.client.Close()
}
