// Package ratelimit tracks failed login attempts per identifier and blocks
// further attempts once a policy threshold is reached. State lives in process
// memory only; a restart clears every entry.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Policy configures a limiter instance. A zero LockoutWindow means a locked
// identifier stays locked until the process restarts.
type Policy struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

// LockedError is returned by CheckAllowed while an identifier is locked out.
type LockedError struct {
	Identifier string
	// Remaining is the time left in the lockout window, zero for a
	// permanent block.
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	if e.Remaining <= 0 {
		return fmt.Sprintf("user %s has been blocked", e.Identifier)
	}
	return fmt.Sprintf("user %s login limit reached, try again in %s", e.Identifier, e.Remaining.Round(time.Second))
}

type entry struct {
	attempts      int
	lastAttemptAt time.Time
}

// Limiter counts consecutive failures per identifier. All methods are safe
// for concurrent use; the single mutex serializes read-modify-write cycles so
// concurrent attempts for the same identifier cannot lose updates.
type Limiter struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]entry

	now func() time.Time
}

// New creates an empty limiter for the given policy.
func New(policy Policy) *Limiter {
	return &Limiter{
		policy:  policy,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// CheckAllowed reports whether the identifier may attempt a login. A locked
// identifier whose window has elapsed is reset and allowed through.
func (l *Limiter) CheckAllowed(identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || e.attempts < l.policy.MaxAttempts {
		return nil
	}
	if l.policy.LockoutWindow > 0 {
		elapsed := l.now().Sub(e.lastAttemptAt)
		if elapsed >= l.policy.LockoutWindow {
			delete(l.entries, identifier)
			return nil
		}
		return &LockedError{Identifier: identifier, Remaining: l.policy.LockoutWindow - elapsed}
	}
	return &LockedError{Identifier: identifier}
}

// RecordFailure increments the failure counter and returns the new count plus
// whether this failure reached the lockout threshold.
func (l *Limiter) RecordFailure(identifier string) (attempts int, locked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[identifier]
	e.attempts++
	e.lastAttemptAt = l.now()
	l.entries[identifier] = e
	return e.attempts, e.attempts >= l.policy.MaxAttempts
}

// RecordSuccess clears the identifier's entry so counting restarts from zero.
func (l *Limiter) RecordSuccess(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}

// Attempts returns the current failure count for an identifier.
func (l *Limiter) Attempts(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[identifier].attempts
}
