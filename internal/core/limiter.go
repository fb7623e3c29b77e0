package core

// limiter.go bounds how many report builds run at once when reports are
// requested over HTTP. Each build loads whole files into memory, so a burst
// of requests is queued behind a semaphore instead of multiplying memory
// use. Waiters give up after maxWait with ErrTooManyBuilds.

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrTooManyBuilds is returned when every build slot stays occupied for the
// whole wait period. Clients should retry after a short delay.
var ErrTooManyBuilds = errors.New("too many concurrent report builds, please try again later")

// DefaultMaxConcurrentBuilds is the default limit for parallel builds.
const DefaultMaxConcurrentBuilds = 2

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 10 * time.Second

// BuildLimiter controls concurrent report builds using a semaphore.
type BuildLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewBuildLimiter creates a limiter that allows at most maxConcurrent
// simultaneous builds. Non-positive arguments fall back to the defaults.
func NewBuildLimiter(maxConcurrent int, maxWait time.Duration) *BuildLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentBuilds
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &BuildLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a build slot.
// Returns nil on success, ErrTooManyBuilds if the wait expires, or the
// context error if ctx ends first. The caller MUST call Release on success.
func (l *BuildLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		return ErrTooManyBuilds
	}
}

// TryAcquire takes a slot without blocking and reports whether it did.
func (l *BuildLimiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release gives back a slot taken by Acquire or TryAcquire.
func (l *BuildLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of builds in progress.
func (l *BuildLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *BuildLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// Available returns the number of free slots.
func (l *BuildLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no build is active or ctx ends.
// Used during shutdown so in-flight builds can finish.
func (l *BuildLimiter) WaitForDrain(ctx context.Context) error {
	if l.ActiveCount() == 0 {
		return nil
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}

// LimiterStatus is a snapshot of the limiter's state.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for health output.
func (l *BuildLimiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: cap(l.semaphore),
	}
}
