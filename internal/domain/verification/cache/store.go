// Package cache provides the bounded verdict cache used by video
// verification. Drivers share a small Store interface so deployments can
// pick process-local memory or redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/utils"
)

// Store is the behaviour required by the video verification service.
type Store interface {
	Get(ctx context.Context, key string) (*model.Verdict, bool, error)
	Put(ctx context.Context, key string, verdict *model.Verdict) error
	Stats(ctx context.Context) (map[string]any, error)
	Close(ctx context.Context) error
}

// Config selects and tunes a cache driver.
type Config struct {
	Driver   string
	Capacity int
	TTL      time.Duration
	Redis    *RedisConfig
}

// RedisConfig captures redis connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// New builds the configured cache driver.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(cfg), nil
	case "redis":
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}

// Key derives the cache key for a video verification request from the first
// 1KB of content plus the request hints.
func Key(data []byte, category, filename string) string {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return fmt.Sprintf("%s_%s_%s", utils.Md5Hex(head), category, filename)
}
