package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, &Redis{Client: client}
}

func TestRedisTicketLockExclusive(t *testing.T) {
	mr, r := newMiniRedis(t)
	lock := NewRedisTicketLock(r, time.Minute)
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, "42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists(lockKeyPrefix+"42"))

	_, ok, err = lock.Acquire(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = lock.Acquire(ctx, "43")
	require.NoError(t, err)
	assert.True(t, ok)

	release()
	assert.False(t, mr.Exists(lockKeyPrefix+"42"))

	_, ok, err = lock.Acquire(ctx, "42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisTicketLockReleaseKeepsForeignLease(t *testing.T) {
	mr, r := newMiniRedis(t)
	lock := NewRedisTicketLock(r, time.Second)
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx, "42")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = lock.Acquire(ctx, "42")
	require.NoError(t, err)
	require.True(t, ok)

	release()
	assert.True(t, mr.Exists(lockKeyPrefix+"42"))
}

func TestRedisTicketLockError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	_, ok, err := NewRedisTicketLock(&Redis{Client: client}, time.Minute).Acquire(context.Background(), "42")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLocalTicketLock(t *testing.T) {
	lock := NewLocalTicketLock()
	ctx := context.Background()

	release, ok, _ := lock.Acquire(ctx, "1")
	require.True(t, ok)
	_, ok, _ = lock.Acquire(ctx, "1")
	assert.False(t, ok)

	release()
	release()
	_, ok, _ = lock.Acquire(ctx, "1")
	assert.True(t, ok)
}
