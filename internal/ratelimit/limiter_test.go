package ratelimit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(policy Policy, start time.Time) (*Limiter, *time.Time) {
	l := New(policy)
	current := start
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLocksAfterThreshold(t *testing.T) {
	l, _ := newTestLimiter(Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute}, time.Now())

	for i := 1; i <= 5; i++ {
		require.NoError(t, l.CheckAllowed("admins@example.com"))
		attempts, locked := l.RecordFailure("admins@example.com")
		assert.Equal(t, i, attempts)
		assert.Equal(t, i == 5, locked)
	}

	err := l.CheckAllowed("admins@example.com")
	var lockedErr *LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, "admins@example.com", lockedErr.Identifier)
	assert.Greater(t, lockedErr.Remaining, time.Duration(0))
}

func TestWindowExpiryResets(t *testing.T) {
	start := time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute}, start)

	for i := 0; i < 5; i++ {
		l.RecordFailure("admins@example.com")
	}
	require.Error(t, l.CheckAllowed("admins@example.com"))

	*clock = start.Add(31 * time.Minute)
	require.NoError(t, l.CheckAllowed("admins@example.com"))
	assert.Equal(t, 0, l.Attempts("admins@example.com"))

	// counting starts over after the reset
	attempts, locked := l.RecordFailure("admins@example.com")
	assert.Equal(t, 1, attempts)
	assert.False(t, locked)
}

func TestPermanentBlockNeverExpires(t *testing.T) {
	start := time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(Policy{MaxAttempts: 3}, start)

	for i := 0; i < 3; i++ {
		l.RecordFailure("teller@example.com")
	}

	*clock = start.Add(24 * time.Hour * 365)
	err := l.CheckAllowed("teller@example.com")
	var lockedErr *LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, time.Duration(0), lockedErr.Remaining)
	assert.Contains(t, lockedErr.Error(), "blocked")
}

func TestSuccessResetsCounter(t *testing.T) {
	l, _ := newTestLimiter(Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute}, time.Now())

	l.RecordFailure("admins@example.com")
	l.RecordFailure("admins@example.com")
	l.RecordSuccess("admins@example.com")
	assert.Equal(t, 0, l.Attempts("admins@example.com"))

	attempts, _ := l.RecordFailure("admins@example.com")
	assert.Equal(t, 1, attempts)
}

func TestIdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Policy{MaxAttempts: 3}, time.Now())

	for i := 0; i < 3; i++ {
		l.RecordFailure("a@example.com")
	}
	require.Error(t, l.CheckAllowed("a@example.com"))
	require.NoError(t, l.CheckAllowed("b@example.com"))
}

func TestConcurrentFailuresAreNotLost(t *testing.T) {
	l := New(Policy{MaxAttempts: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.RecordFailure("admins@example.com")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, l.Attempts("admins@example.com"))
}

func TestLockedErrorMatchesErrorsAs(t *testing.T) {
	l, _ := newTestLimiter(Policy{MaxAttempts: 1, LockoutWindow: time.Minute}, time.Now())
	l.RecordFailure("x@example.com")

	err := l.CheckAllowed("x@example.com")
	var lockedErr *LockedError
	assert.True(t, errors.As(err, &lockedErr))
}
