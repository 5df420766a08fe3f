package core

// sessions.go keeps one Dashboard per open page. A page session starts with
// a full page load and ends when it has been idle longer than the
// configured TTL; the sweeper evicts such sessions periodically, and a
// lookup of an expired one fails the same way as an unknown id.
//
// The store is bounded: creating a session when full evicts the least
// recently used one.

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/countrydash/internal/logging"
	"github.com/JonMunkholm/countrydash/internal/metrics"
)

// ErrSessionNotFound is returned for unknown or expired page sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionsConfig holds the store limits.
// Zero values fall back to the defaults.
type SessionsConfig struct {
	IdleTTL time.Duration // Evict after this much inactivity (default: 30m)
	Max     int           // Sessions held at once (default: 1000)
}

// DashboardFactory builds the dashboard for a new session id.
type DashboardFactory func(id string) *Dashboard

type sessionEntry struct {
	dashboard *Dashboard
	lastSeen  time.Time
}

// Sessions is a concurrency-safe page session store.
type Sessions struct {
	mu      sync.Mutex
	items   map[string]*sessionEntry
	factory DashboardFactory
	ttl     time.Duration
	max     int
	metrics *metrics.Metrics

	// Now is the clock used for idle accounting. Tests may replace it.
	Now func() time.Time
}

// NewSessions creates an empty store. m may be nil.
func NewSessions(factory DashboardFactory, cfg SessionsConfig, m *metrics.Metrics) *Sessions {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.Max <= 0 {
		cfg.Max = 1000
	}
	return &Sessions{
		items:   make(map[string]*sessionEntry),
		factory: factory,
		ttl:     cfg.IdleTTL,
		max:     cfg.Max,
		metrics: m,
		Now:     time.Now,
	}
}

// Create starts a new page session and returns its dashboard.
func (s *Sessions) Create() *Dashboard {
	id := uuid.NewString()
	d := s.factory(id)

	s.mu.Lock()
	var evicted *Dashboard
	if len(s.items) >= s.max {
		evicted = s.evictOldestLocked()
	}
	s.items[id] = &sessionEntry{dashboard: d, lastSeen: s.Now()}
	n := len(s.items)
	s.mu.Unlock()

	if evicted != nil {
		slog.Debug("page session evicted, store full", "session_id", evicted.ID())
		evicted.Close()
	}
	s.metrics.SetSessions(n)
	return d
}

// Get returns the dashboard for id and marks the session as active.
func (s *Sessions) Get(id string) (*Dashboard, error) {
	s.mu.Lock()
	e, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	now := s.Now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.items, id)
		n := len(s.items)
		s.mu.Unlock()

		e.dashboard.Close()
		s.metrics.SetSessions(n)
		return nil, ErrSessionNotFound
	}
	e.lastSeen = now
	s.mu.Unlock()

	return e.dashboard, nil
}

// Len returns the number of sessions held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep evicts every session idle longer than the TTL and returns how many
// were removed.
func (s *Sessions) Sweep() int {
	now := s.Now()

	s.mu.Lock()
	var expired []*Dashboard
	for id, e := range s.items {
		if now.Sub(e.lastSeen) > s.ttl {
			expired = append(expired, e.dashboard)
			delete(s.items, id)
		}
	}
	n := len(s.items)
	s.mu.Unlock()

	for _, d := range expired {
		d.Close()
	}
	s.metrics.SetSessions(n)
	return len(expired)
}

// StartSweeper evicts idle sessions every interval until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (s *Sessions) StartSweeper(ctx context.Context, interval time.Duration) {
	logger := logging.WithFields(ctx, "op", "session_sweep")
	logger.Info("session sweeper started",
		"interval", interval.String(),
		"idle_ttl", s.ttl.String(),
		"max_sessions", s.max,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			start := time.Now()
			if removed := s.Sweep(); removed > 0 {
				logger.Info("evicted idle page sessions",
					"evicted", removed,
					"remaining", s.Len(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}
		}
	}
}

// CloseAll closes and forgets every session.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	all := make([]*Dashboard, 0, len(s.items))
	for _, e := range s.items {
		all = append(all, e.dashboard)
	}
	clear(s.items)
	s.mu.Unlock()

	for _, d := range all {
		d.Close()
	}
	s.metrics.SetSessions(0)
}

func (s *Sessions) evictOldestLocked() *Dashboard {
	var oldestID string
	var oldest *sessionEntry
	for id, e := range s.items {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return nil
	}
	delete(s.items, oldestID)
	return oldest.dashboard
}
