// Package coordination keeps periodic maintenance (scheduled scans, rechecks,
// stale cleanup) to one instance at a time.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLockTTL bounds how long a crashed holder blocks other instances.
	DefaultLockTTL = 2 * time.Minute
	// refreshDivisor sets the renewal interval to TTL/refreshDivisor.
	refreshDivisor = 3
)

// ErrLeaseLost means the lock expired or was taken over while held.
var ErrLeaseLost = errors.New("lock lease lost")

// Both scripts act only when the key still carries the holder's token.
var (
	releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

	renewScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0`)
)

// LockConfig tunes the Redis lease.
type LockConfig struct {
	// TTL is the lease length; the holder renews it every TTL/3.
	TTL time.Duration
}

// Lease is a held or candidate Redis lock identified by a random token.
type Lease struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

// NewLease prepares a lease on key. Nothing is written until Acquire.
func NewLease(client *redis.Client, key string, cfg LockConfig) *Lease {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultLockTTL
	}
	return &Lease{client: client, key: key, token: uuid.NewString(), ttl: cfg.TTL}
}

// Acquire takes the lock if it is free. It never waits.
func (l *Lease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	return ok, nil
}

// Renew pushes the expiry out by TTL. It returns ErrLeaseLost when the key
// no longer carries this lease's token.
func (l *Lease) Renew(ctx context.Context) error {
	return l.run(ctx, renewScript, "renew", l.ttl.Milliseconds())
}

// Release deletes the key if this lease still holds it.
func (l *Lease) Release(ctx context.Context) error {
	return l.run(ctx, releaseScript, "release")
}

func (l *Lease) run(ctx context.Context, script *redis.Script, op string, args ...any) error {
	n, err := script.Run(ctx, l.client, []string{l.key}, append([]any{l.token}, args...)...).Int()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, l.key, err)
	}
	if n == 0 {
		return ErrLeaseLost
	}
	return nil
}

// keepAlive renews the lease until ctx is done. When a renewal finds the
// lease gone it calls lost and stops.
func (l *Lease) keepAlive(ctx context.Context, lost func()) {
	ticker := time.NewTicker(l.ttl / refreshDivisor)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Renew(ctx); errors.Is(err, ErrLeaseLost) {
				lost()
				return
			}
		}
	}
}
