package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// RedisClient is the subset of the go-redis client the adapter relies on.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisConfig describes how to reach the Redis cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
	Prefix   string
	Format   Format
}

// RedisAdapter stores the profile under a single Redis key.
type RedisAdapter struct {
	client RedisClient
	key    string
	format Format
}

var _ Adapter = (*RedisAdapter)(nil)

// NewRedisClient builds a go-redis client from the config.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	return redis.NewClient(opts)
}

// NewRedisAdapter wraps an existing client. The stored key is
// Prefix + DefaultKey.
func NewRedisAdapter(client RedisClient, cfg RedisConfig) *RedisAdapter {
	format := cfg.Format
	if format == "" || format == FormatAuto {
		format = FormatJSON
	}
	return &RedisAdapter{
		client: client,
		key:    strings.TrimSpace(cfg.Prefix) + DefaultKey,
		format: format,
	}
}

// Key returns the Redis key in use.
func (a *RedisAdapter) Key() string {
	return a.key
}

// Load implements Adapter.
func (a *RedisAdapter) Load(ctx context.Context) (profile.Profile, bool, error) {
	if a.client == nil {
		return profile.Profile{}, false, wrapErr("load", a.key, ErrUnavailable)
	}
	data, err := a.client.Get(ctx, a.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, wrapErr("load", a.key, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	p, err := Decode(a.format, data)
	if err != nil {
		return profile.Profile{}, false, wrapErr("load", a.key, err)
	}
	return p, true, nil
}

// Save implements Adapter. Entries never expire.
func (a *RedisAdapter) Save(ctx context.Context, p profile.Profile) error {
	if a.client == nil {
		return wrapErr("save", a.key, ErrUnavailable)
	}
	data, err := Encode(a.format, p)
	if err != nil {
		return wrapErr("save", a.key, err)
	}
	if err := a.client.Set(ctx, a.key, data, 0).Err(); err != nil {
		return wrapErr("save", a.key, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	return nil
}
