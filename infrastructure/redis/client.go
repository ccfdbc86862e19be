// Package redis opens the optional Redis connection used for progress
// caching, scan events and cross-process locks.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings. Redis is optional: with Enabled
// false the service runs on Postgres alone.
type Config struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
}

var (
	// ErrDisabled is returned by Connect when Redis is switched off.
	ErrDisabled = errors.New("redis disabled")
	// ErrEmptyAddress is returned when Redis is enabled without an address.
	ErrEmptyAddress = errors.New("redis address is required")
)

// DefaultPingTimeout bounds the initial ping and each health probe.
const DefaultPingTimeout = 3 * time.Second

// Connect dials Redis and pings it. A client that fails the ping is closed
// before the error is returned.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}

	return client, nil
}

// Pinger returns a health probe that pings client with the given timeout.
func Pinger(client *redis.Client, timeout time.Duration) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}
