package redis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, wait time.Duration) (*UserLocker, *mockCmdable) {
	t.Helper()
	mock := newMockCmdable()
	locker, err := NewUserLocker(&Client{store: mock}, time.Minute, wait)
	require.NoError(t, err)
	locker.retry = time.Millisecond
	return locker, mock
}

func TestUserLocker_ReleasesAfterRun(t *testing.T) {
	locker, mock := newTestLocker(t, 10*time.Millisecond)
	userID := uuid.New()

	ran := false
	err := locker.WithUserLock(context.Background(), userID, func(context.Context) error {
		ran = true
		require.Len(t, mock.data, 1)
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	require.Empty(t, mock.data)
}

func TestUserLocker_PropagatesCallbackError(t *testing.T) {
	locker, mock := newTestLocker(t, 10*time.Millisecond)
	boom := errors.New("boom")

	err := locker.WithUserLock(context.Background(), uuid.New(), func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, mock.data, "lock must be released on error")
}

func TestUserLocker_TimesOutWhileHeld(t *testing.T) {
	locker, mock := newTestLocker(t, 5*time.Millisecond)
	userID := uuid.New()
	mock.data["hh:lock:user:"+userID.String()] = "someone-else"

	err := locker.WithUserLock(context.Background(), userID, func(context.Context) error {
		t.Fatal("callback must not run without the lock")
		return nil
	})
	require.ErrorIs(t, err, ErrLockNotAcquired)
	require.Equal(t, "someone-else", mock.data["hh:lock:user:"+userID.String()], "foreign lock must survive")
}

func TestUserLocker_DifferentUsersDoNotContend(t *testing.T) {
	locker, _ := newTestLocker(t, 5*time.Millisecond)
	a, b := uuid.New(), uuid.New()

	err := locker.WithUserLock(context.Background(), a, func(ctx context.Context) error {
		return locker.WithUserLock(ctx, b, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
}

func TestUserLocker_SerializesSameUser(t *testing.T) {
	locker, _ := newTestLocker(t, time.Second)
	userID := uuid.New()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithUserLock(context.Background(), userID, func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), maxInside)
}

func TestNewUserLocker_RequiresStore(t *testing.T) {
	_, err := NewUserLocker(nil, time.Second, time.Second)
	require.Error(t, err)
}

func TestUserLocker_ReleaseKeepsLeaseTakenOverAfterExpiry(t *testing.T) {
	locker, mock := newTestLocker(t, 10*time.Millisecond)
	userID := uuid.New()
	key := "hh:lock:user:" + userID.String()

	err := locker.WithUserLock(context.Background(), userID, func(context.Context) error {
		// lease expired and another request acquired it
		mock.mu.Lock()
		mock.data[key] = "next-owner"
		mock.mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "next-owner", mock.data[key])
	require.Equal(t, 1, mock.scriptCalls)
}
