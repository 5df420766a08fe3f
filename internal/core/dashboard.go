package core

// dashboard.go is the per-page-session orchestrator. It owns the session
// state (current list, sort, filter, regions) and turns the four page
// triggers (initial load, sync, filter change, sort click) into backend
// calls and fresh views.
//
// Backend calls run without holding the state lock, so a slow fetch never
// blocks Sort or View. Country loads carry a generation number; a response
// that is no longer the newest is discarded instead of overwriting a newer
// one.
//
// Backend failures never escape: they surface as toasts only. Region load
// failures are the exception and are dropped silently, leaving the selector
// as it was.

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/countrydash/internal/countries"
	"github.com/JonMunkholm/countrydash/internal/logging"
	"github.com/JonMunkholm/countrydash/internal/metrics"
)

// Toast texts.
const (
	LoadErrorText   = "Error al cargar datos."
	SyncErrorPrefix = "Error al sincronizar: "
)

// Source is the country backend as seen by the dashboard.
// *countries.Client satisfies it.
type Source interface {
	TriggerSync(ctx context.Context) (countries.SyncResult, error)
	ListRegions(ctx context.Context) ([]string, error)
	ListCountries(ctx context.Context, f countries.Filter) ([]countries.Country, error)
}

// DashboardOption configures a Dashboard.
type DashboardOption func(*Dashboard)

// WithSyncLimiter shares a process-wide sync semaphore with the dashboard.
func WithSyncLimiter(l *SyncLimiter) DashboardOption {
	return func(d *Dashboard) { d.limiter = l }
}

// WithMetrics records sync outcomes and stale responses.
func WithMetrics(m *metrics.Metrics) DashboardOption {
	return func(d *Dashboard) { d.metrics = m }
}

// WithToaster replaces the wall-clock toaster, mostly for tests.
func WithToaster(t *Toaster) DashboardOption {
	return func(d *Dashboard) { d.toaster = t }
}

// Snapshot is an immutable copy of everything the page shows.
type Snapshot struct {
	SessionID string                `json:"session_id"`
	Search    string                `json:"search"`
	Region    string                `json:"region"`
	Regions   []string              `json:"regions"`
	Sort      Sorter                `json:"sort"`
	Table     TableView             `json:"table"`
	Chart     *Chart                `json:"chart,omitempty"`
	Stats     StatsView             `json:"stats"`
	Toast     ToastView             `json:"toast"`
	Syncing   bool                  `json:"syncing"`
	LastSync  *countries.SyncResult `json:"last_sync,omitempty"`
	Loaded    bool                  `json:"loaded"` // a country load has completed at least once
}

// Dashboard is the state of one page session.
type Dashboard struct {
	id      string
	source  Source
	limiter *SyncLimiter
	metrics *metrics.Metrics
	toaster *Toaster

	mu       sync.Mutex
	list     []countries.Country
	sorter   Sorter
	search   string
	region   string
	regions  []string
	table    TableView
	chart    ChartRenderer
	stats    StatsPresenter
	syncing  bool
	lastSync *countries.SyncResult
	loaded   bool
	gen      uint64
}

// NewDashboard creates the state for one page session. Nothing is loaded
// until Init.
func NewDashboard(id string, source Source, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		id:     id,
		source: source,
		sorter: NewSorter(),
		stats:  NewStatsPresenter(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.toaster == nil {
		d.toaster = NewToaster()
	}
	if d.limiter == nil {
		d.limiter = NewSyncLimiter(DefaultMaxConcurrentSyncs, DefaultSyncWait)
	}
	return d
}

// ID returns the page session id.
func (d *Dashboard) ID() string {
	return d.id
}

// Init performs the initial load: regions first, then countries with the
// empty filter.
func (d *Dashboard) Init(ctx context.Context) {
	d.loadRegions(ctx)
	d.loadCountries(ctx)
}

// Sync asks the backend to refresh its data. It returns false without doing
// anything when a sync from this session is already running. On success the
// server message is toasted and regions and countries are reloaded; on
// failure the error is toasted. The syncing flag is cleared either way.
func (d *Dashboard) Sync(ctx context.Context) bool {
	d.mu.Lock()
	if d.syncing {
		d.mu.Unlock()
		return false
	}
	d.syncing = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.syncing = false
		d.mu.Unlock()
	}()

	logger := logging.WithFields(ctx, "op", "sync")
	start := time.Now()

	result, err := d.triggerSync(ctx)
	d.metrics.RecordSync(err == nil)
	if err != nil {
		logger.Warn("sync failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		d.toaster.Show(SyncErrorPrefix+ToastDetail(err), ToastRed)
		return true
	}

	logger.Info("sync completed",
		"inserted", result.Inserted,
		"updated", result.Updated,
		"total", result.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	d.toaster.Show(result.Message, ToastGreen)

	d.mu.Lock()
	d.lastSync = &result
	d.mu.Unlock()

	d.loadRegions(ctx)
	d.loadCountries(ctx)
	return true
}

// triggerSync holds a limiter slot only for the backend call itself.
func (d *Dashboard) triggerSync(ctx context.Context) (countries.SyncResult, error) {
	if err := d.limiter.Acquire(ctx); err != nil {
		return countries.SyncResult{}, err
	}
	defer d.limiter.Release()
	return d.source.TriggerSync(ctx)
}

// Filter stores the search text (trimmed) and region, then reloads countries.
// Regions are left alone.
func (d *Dashboard) Filter(ctx context.Context, search, region string) {
	d.mu.Lock()
	d.search = strings.TrimSpace(search)
	d.region = region
	d.mu.Unlock()

	d.loadCountries(ctx)
}

// Sort re-sorts the held list by key and re-renders the table only.
func (d *Dashboard) Sort(key SortKey) TableView {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.list = d.sorter.Sort(d.list, key)
	d.table = TableRenderer{}.Render(d.list)
	return d.table
}

// Sorter returns the active sort column and direction.
func (d *Dashboard) Sorter() Sorter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sorter
}

func (d *Dashboard) loadRegions(ctx context.Context) {
	regions, err := d.source.ListRegions(ctx)
	if err != nil {
		logging.WithFields(ctx, "op", "load_regions").Debug("region load failed", "error", err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.regions = slices.Clone(regions)
	if d.region != "" && !slices.Contains(d.regions, d.region) {
		d.region = ""
	}
	d.stats.RegionCount(len(d.regions))
}

func (d *Dashboard) loadCountries(ctx context.Context) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	filter := countries.Filter{Search: d.search, Region: d.region}
	d.mu.Unlock()

	list, err := d.source.ListCountries(ctx, filter)
	logger := logging.WithFields(ctx, "op", "load_countries", "generation", gen)

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		d.metrics.RecordStale()
		logger.Debug("discarded stale country response", "latest", d.gen)
		return
	}

	if err != nil {
		logger.Warn("country load failed", "error", err)
		d.toaster.Show(LoadErrorText, ToastRed)
		return
	}

	d.list = d.sorter.Reapply(list)
	d.table = TableRenderer{}.Render(d.list)
	d.chart.Render(d.list)
	d.stats.Update(d.list)
	d.loaded = true
}

// View returns a snapshot of the current state.
func (d *Dashboard) View() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		SessionID: d.id,
		Search:    d.search,
		Region:    d.region,
		Regions:   slices.Clone(d.regions),
		Sort:      d.sorter,
		Table:     d.table,
		Chart:     d.chart.Current(),
		Stats:     d.stats.View(),
		Toast:     d.toaster.View(),
		Syncing:   d.syncing,
		Loaded:    d.loaded,
	}
	if d.lastSync != nil {
		last := *d.lastSync
		snap.LastSync = &last
	}
	return snap
}

// Toast returns the current toast state.
func (d *Dashboard) Toast() ToastView {
	return d.toaster.View()
}

// Close stops the toast timer and releases the chart.
func (d *Dashboard) Close() {
	d.toaster.Close()

	d.mu.Lock()
	d.chart.Destroy()
	d.mu.Unlock()
}
