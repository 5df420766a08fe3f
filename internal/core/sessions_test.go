package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/countrydash/internal/metrics"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func newTestSessions(t *testing.T, cfg SessionsConfig) (*Sessions, *manualClock, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	src := &fakeSource{}
	s := NewSessions(func(id string) *Dashboard {
		d, _ := newTestDashboard(src)
		d.id = id
		return d
	}, cfg, m)
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.Now = clock.Now
	return s, clock, m
}

func TestSessions_CreateAndGet(t *testing.T) {
	s, _, m := newTestSessions(t, SessionsConfig{})

	d := s.Create()
	require.NotEmpty(t, d.ID())

	got, err := s.Get(d.ID())
	require.NoError(t, err)
	assert.Same(t, d, got)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestSessions_UniqueIDs(t *testing.T) {
	s, _, _ := newTestSessions(t, SessionsConfig{})
	a, b := s.Create(), s.Create()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSessions_UnknownID(t *testing.T) {
	s, _, _ := newTestSessions(t, SessionsConfig{})
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_ExpiredOnGet(t *testing.T) {
	s, clock, _ := newTestSessions(t, SessionsConfig{IdleTTL: time.Minute})
	d := s.Create()

	clock.now = clock.now.Add(30 * time.Second)
	_, err := s.Get(d.ID())
	require.NoError(t, err, "activity within the TTL")

	clock.now = clock.now.Add(50 * time.Second)
	_, err = s.Get(d.ID())
	require.NoError(t, err, "Get refreshes last-seen")

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = s.Get(d.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, s.Len())
}

func TestSessions_Sweep(t *testing.T) {
	s, clock, m := newTestSessions(t, SessionsConfig{IdleTTL: time.Minute})

	idle := s.Create()
	clock.now = clock.now.Add(45 * time.Second)
	active := s.Create()
	clock.now = clock.now.Add(30 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	_, err := s.Get(idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(active.ID())
	assert.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestSessions_EvictsLeastRecentlyUsedWhenFull(t *testing.T) {
	s, clock, _ := newTestSessions(t, SessionsConfig{Max: 2})

	first := s.Create()
	clock.now = clock.now.Add(time.Second)
	second := s.Create()
	clock.now = clock.now.Add(time.Second)
	_, _ = s.Get(first.ID()) // first is now the most recent
	clock.now = clock.now.Add(time.Second)

	s.Create()

	assert.Equal(t, 2, s.Len())
	_, err := s.Get(second.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(first.ID())
	assert.NoError(t, err)
}

func TestSessions_CloseAll(t *testing.T) {
	s, _, m := newTestSessions(t, SessionsConfig{})
	d := s.Create()
	d.toaster.Show("hola", ToastBlue)

	s.CloseAll()

	assert.Zero(t, s.Len())
	assert.False(t, d.Toast().Visible)
	assert.Zero(t, testutil.ToFloat64(m.ActiveSessions))
}

func TestSessions_SweeperStopsOnCancel(t *testing.T) {
	s, _, _ := newTestSessions(t, SessionsConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.StartSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
