package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "contact-bridge:ticket:"

// releaseScript deletes the key only if it still holds our token, so a lease
// that expired and was taken over is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseFunc gives a held lock back.
type ReleaseFunc func()

// RedisTicketLock serializes pipeline runs for the same ticket across instances.
type RedisTicketLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTicketLock builds a lock with the given lease.
func NewRedisTicketLock(r *Redis, ttl time.Duration) *RedisTicketLock {
	return &RedisTicketLock{client: r.Client, ttl: ttl}
}

// Acquire takes the lock for ticketID. ok is false when another run holds it.
func (l *RedisTicketLock) Acquire(ctx context.Context, ticketID string) (ReleaseFunc, bool, error) {
	key := lockKeyPrefix + ticketID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire ticket lock %s: %w", ticketID, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, true, nil
}

// LocalTicketLock is the single-instance fallback used without Redis.
type LocalTicketLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalTicketLock creates an empty lock table.
func NewLocalTicketLock() *LocalTicketLock {
	return &LocalTicketLock{held: make(map[string]struct{})}
}

// Acquire takes the lock for ticketID without blocking.
func (l *LocalTicketLock) Acquire(_ context.Context, ticketID string) (ReleaseFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[ticketID]; busy {
		return nil, false, nil
	}
	l.held[ticketID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, ticketID)
			l.mu.Unlock()
		})
	}
	return release, true, nil
}
