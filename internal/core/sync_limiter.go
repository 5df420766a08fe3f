package core

// sync_limiter.go caps how many backend syncs run at once across all page
// sessions. A sync makes the backend re-download and upsert the whole
// upstream dataset, so a burst of clicks from many open dashboards must not
// turn into a burst of full refreshes.
//
// When every slot is taken a sync waits up to maxWait, then fails with
// ErrTooManySyncs; the dashboard shows that as a sync error toast.
// WaitForDrain lets shutdown wait for syncs that are still running.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManySyncs is returned when no sync slot frees up within the wait limit.
var ErrTooManySyncs = errors.New("too many concurrent syncs, please try again later")

// DefaultMaxConcurrentSyncs is the default limit for parallel syncs.
const DefaultMaxConcurrentSyncs = 2

// DefaultSyncWait is how long to wait for a slot before rejecting.
const DefaultSyncWait = 30 * time.Second

// SyncLimiter is a semaphore over backend sync calls.
type SyncLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

// NewSyncLimiter allows at most maxConcurrent simultaneous syncs.
// Non-positive arguments fall back to the defaults.
func NewSyncLimiter(maxConcurrent int, maxWait time.Duration) *SyncLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentSyncs
	}
	if maxWait <= 0 {
		maxWait = DefaultSyncWait
	}

	return &SyncLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to the configured limit.
// The caller MUST call Release once the sync call returns.
func (l *SyncLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-timer.C:
		return ErrTooManySyncs
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (l *SyncLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.slots
}

// ActiveCount returns the number of syncs currently holding a slot.
func (l *SyncLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no sync holds a slot or ctx ends.
func (l *SyncLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SyncLimiterStatus is a snapshot for health output.
type SyncLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *SyncLimiter) Status() SyncLimiterStatus {
	active := l.ActiveCount()
	return SyncLimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
