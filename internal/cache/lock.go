package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinedex/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned by Acquire when another run owns the lock.
var ErrLockHeld = errors.New("seed lock is held by another run")

// ErrLockLost is returned by Refresh when the lock expired or now belongs to someone else.
var ErrLockLost = errors.New("seed lock was lost")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refreshScript resets the TTL only if the key still carries our token.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RunLock is a single-holder Redis lock guarding a seed run against concurrent writers.
type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewRunLock creates a lock on key. A nil client yields a lock whose methods are no-ops.
func NewRunLock(client *redis.Client, key string, ttl time.Duration) *RunLock {
	return &RunLock{client: client, key: key, ttl: ttl}
}

// Acquire takes the lock or returns ErrLockHeld.
func (l *RunLock) Acquire(ctx context.Context) (err error) {
	if l.client == nil {
		return nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "lock_acquire")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if !ok {
		return ErrLockHeld
	}
	l.token = token
	return nil
}

// Refresh restarts the lock's TTL. It returns ErrLockLost when the key expired or was taken over.
func (l *RunLock) Refresh(ctx context.Context) (err error) {
	if l.client == nil || l.token == "" {
		return nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "lock_refresh")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	n, err := refreshScript.Run(ctx, l.client, []string{l.key}, l.token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("refresh %s: %w", l.key, err)
	}
	if n == 0 {
		l.token = ""
		return ErrLockLost
	}
	return nil
}

// Release frees the lock if this RunLock still holds it.
func (l *RunLock) Release(ctx context.Context) (err error) {
	if l.client == nil || l.token == "" {
		return nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "lock_release")
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	if err = releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	l.token = ""
	return nil
}
