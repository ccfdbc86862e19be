package coordination_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/link-checker/internal/coordination"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestLease_AcquireAndRelease(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()

	first := coordination.NewLease(client, "lock:scan", coordination.LockConfig{TTL: time.Minute})
	second := coordination.NewLease(client, "lock:scan", coordination.LockConfig{TTL: time.Minute})

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.ErrorIs(t, second.Release(ctx), coordination.ErrLeaseLost)
	assert.True(t, mr.Exists("lock:scan"))

	require.NoError(t, first.Release(ctx))
	assert.False(t, mr.Exists("lock:scan"))

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLease_RenewAfterExpiry(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()

	lease := coordination.NewLease(client, "lock:recheck", coordination.LockConfig{TTL: time.Minute})
	ok, err := lease.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(45 * time.Second)
	require.NoError(t, lease.Renew(ctx))
	mr.FastForward(45 * time.Second)
	assert.True(t, mr.Exists("lock:recheck"))

	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, lease.Renew(ctx), coordination.ErrLeaseLost)
}

func TestRedisGuard_RunExclusive(t *testing.T) {
	mr, client := newRedis(t)
	guard := coordination.NewRedisGuard(client, "link-checker:lock:", coordination.LockConfig{})
	ctx := context.Background()

	var runs atomic.Int32
	ran, err := guard.RunExclusive(ctx, "scan", func(context.Context) error {
		runs.Add(1)
		assert.True(t, mr.Exists("link-checker:lock:scan"))

		nested, nestedErr := guard.RunExclusive(ctx, "scan", func(context.Context) error {
			runs.Add(1)
			return nil
		})
		assert.NoError(t, nestedErr)
		assert.False(t, nested)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, mr.Exists("link-checker:lock:scan"))
}

func TestRedisGuard_PropagatesError(t *testing.T) {
	_, client := newRedis(t)
	guard := coordination.NewRedisGuard(client, "lc:", coordination.LockConfig{})
	boom := errors.New("boom")

	ran, err := guard.RunExclusive(context.Background(), "recheck", func(context.Context) error { return boom })

	assert.True(t, ran)
	require.ErrorIs(t, err, boom)
}

func TestRedisGuard_CancelsOnLostLease(t *testing.T) {
	mr, client := newRedis(t)
	guard := coordination.NewRedisGuard(client, "lc:", coordination.LockConfig{TTL: 300 * time.Millisecond})

	ran, err := guard.RunExclusive(context.Background(), "cleanup", func(ctx context.Context) error {
		mr.Del("lc:cleanup")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("context not cancelled")
		}
	})

	assert.True(t, ran)
	require.ErrorIs(t, err, coordination.ErrLeaseLost)
}

func TestLocalGuard_RunExclusive(t *testing.T) {
	guard := coordination.NewLocalGuard()
	ctx := context.Background()

	ran, err := guard.RunExclusive(ctx, "cleanup", func(context.Context) error {
		nested, _ := guard.RunExclusive(ctx, "cleanup", func(context.Context) error { return nil })
		assert.False(t, nested)

		other, _ := guard.RunExclusive(ctx, "recheck", func(context.Context) error { return nil })
		assert.True(t, other)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}
