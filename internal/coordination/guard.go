package coordination

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Guard runs a function only if no other holder is running it under the
// same name. It reports whether fn ran.
type Guard interface {
	RunExclusive(ctx context.Context, name string, fn func(context.Context) error) (bool, error)
}

// RedisGuard serializes work across instances with a renewed Lease.
type RedisGuard struct {
	client *redis.Client
	prefix string
	cfg    LockConfig
}

// NewRedisGuard namespaces lock keys under prefix.
func NewRedisGuard(client *redis.Client, prefix string, cfg LockConfig) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, cfg: cfg}
}

// RunExclusive skips fn when another instance holds the lock. The lease is
// renewed while fn runs; if it is lost anyway, fn's context is cancelled.
func (g *RedisGuard) RunExclusive(ctx context.Context, name string, fn func(context.Context) error) (bool, error) {
	lease := NewLease(g.client, g.prefix+name, g.cfg)

	acquired, err := lease.Acquire(ctx)
	if err != nil || !acquired {
		return false, err
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go lease.keepAlive(runCtx, func() { cancel(ErrLeaseLost) })

	runErr := fn(runCtx)
	if cause := context.Cause(runCtx); errors.Is(cause, ErrLeaseLost) {
		runErr = errors.Join(runErr, cause)
	}
	cancel(nil)

	releaseErr := lease.Release(context.WithoutCancel(ctx))
	if releaseErr != nil && !errors.Is(releaseErr, ErrLeaseLost) {
		return true, errors.Join(runErr, releaseErr)
	}
	return true, runErr
}

// LocalGuard serializes work within one process. It is used when Redis is
// disabled.
type LocalGuard struct {
	mu      sync.Mutex
	running map[string]bool
}

// NewLocalGuard creates a LocalGuard.
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{running: make(map[string]bool)}
}

// RunExclusive skips fn while another goroutine runs name.
func (g *LocalGuard) RunExclusive(ctx context.Context, name string, fn func(context.Context) error) (bool, error) {
	g.mu.Lock()
	if g.running[name] {
		g.mu.Unlock()
		return false, nil
	}
	g.running[name] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.running, name)
		g.mu.Unlock()
	}()

	return true, fn(ctx)
}
