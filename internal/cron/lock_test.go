package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryLockStore struct {
	values map[string]string
}

func (m *memoryLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryLockStore) CompareAndDelete(_ context.Context, key, expected string) (bool, error) {
	if v, ok := m.values[key]; !ok || v != expected {
		return false, nil
	}
	delete(m.values, key)
	return true, nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	store := &memoryLockStore{values: map[string]string{}}
	first, err := NewRedisLock(store, "hh:cron:lock:test", time.Minute)
	require.NoError(t, err)
	second, err := NewRedisLock(store, "hh:cron:lock:test", time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, second.Release(ctx))
	require.Contains(t, store.values, "hh:cron:lock:test")

	require.NoError(t, first.Release(ctx))
	require.NotContains(t, store.values, "hh:cron:lock:test")
}

func TestRedisLockLeavesForeignLease(t *testing.T) {
	store := &memoryLockStore{values: map[string]string{}}
	lock, err := NewRedisLock(store, "hh:cron:lock:test", time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// lease expired and another replica took over
	store.values["hh:cron:lock:test"] = "someone-else"
	require.NoError(t, lock.Release(ctx))
	require.Equal(t, "someone-else", store.values["hh:cron:lock:test"])
}
