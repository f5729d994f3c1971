package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	userLockScope     = "user"
	defaultLockTTL    = 10 * time.Second
	defaultLockWait   = 3 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
)

// ErrLockNotAcquired is returned when the wait budget expires while another
// owner still holds the lock.
var ErrLockNotAcquired = errors.New("lock not acquired")

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)
	LockKey(scope, id string) string
}

// UserLocker serializes work for a single shopper across API instances using
// SETNX + TTL. The TTL bounds how long a crashed holder can block others.
type UserLocker struct {
	store lockStore
	ttl   time.Duration
	wait  time.Duration
	retry time.Duration
}

// NewUserLocker constructs a Redis-backed per-user lock.
func NewUserLocker(store lockStore, ttl, wait time.Duration) (*UserLocker, error) {
	if store == nil {
		return nil, errors.New("redis client required for lock")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &UserLocker{store: store, ttl: ttl, wait: wait, retry: defaultRetryDelay}, nil
}

// WithUserLock runs fn while holding the lock for userID.
func (l *UserLocker) WithUserLock(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error {
	key := l.store.LockKey(userLockScope, userID.String())
	owner, err := l.acquire(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		// release on a fresh context so a cancelled request still frees the key
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = l.release(releaseCtx, key, owner)
	}()
	return fn(ctx)
}

func (l *UserLocker) acquire(ctx context.Context, key string) (string, error) {
	owner := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.store.SetNX(ctx, key, owner, l.ttl)
		if err != nil {
			return "", fmt.Errorf("setnx: %w", err)
		}
		if ok {
			return owner, nil
		}
		if time.Now().After(deadline) {
			return "", ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

// release frees the lock only if the owner value still matches. An expired
// lease taken over by another owner is left alone.
func (l *UserLocker) release(ctx context.Context, key, owner string) error {
	if _, err := l.store.CompareAndDelete(ctx, key, owner); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
