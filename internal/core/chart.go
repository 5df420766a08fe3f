package core

import (
	"math"
	"slices"
	"sync/atomic"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// ChartLabel names the single dataset drawn by the chart.
const ChartLabel = "Población total"

// Palette holds the bar colours; bars beyond the tenth wrap around.
var Palette = [...]string{
	"#6366f1", "#10b981", "#f59e0b", "#ef4444",
	"#3b82f6", "#8b5cf6", "#ec4899", "#14b8a6",
	"#f97316", "#84cc16",
}

// chartTickCount is the number of intervals the y axis is split into.
const chartTickCount = 5

// Bar is one region in the chart.
type Bar struct {
	Region     string  `json:"region"`
	Population int64   `json:"population"`
	Color      string  `json:"color"`
	Tooltip    string  `json:"tooltip"`
	Height     float64 `json:"height"` // fraction of the y-axis maximum, 0..1
}

// Tick is one labelled y-axis gridline.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Chart is one rendered bar chart instance. A chart is immutable once built;
// the renderer destroys it when a newer chart replaces it.
type Chart struct {
	ID    uint64  `json:"id"`
	Label string  `json:"label"`
	Bars  []Bar   `json:"bars"`
	Ticks []Tick  `json:"ticks"`
	Max   float64 `json:"max"`

	destroyed atomic.Bool
}

// Destroy releases the chart. Destroying twice is harmless.
func (c *Chart) Destroy() {
	c.destroyed.Store(true)
}

// Destroyed reports whether a newer chart has replaced this one.
func (c *Chart) Destroyed() bool {
	return c.destroyed.Load()
}

// ChartRenderer draws population-by-region charts and owns the single live
// instance. It is not safe for concurrent use; the Dashboard serializes calls.
type ChartRenderer struct {
	current *Chart
	nextID  uint64
	live    int
}

// Render aggregates list by region, orders regions by total descending and
// returns a new chart. The previous chart, if any, is destroyed first so at
// most one instance is ever live.
func (r *ChartRenderer) Render(list []countries.Country) *Chart {
	totals := AggregateByRegion(list)
	slices.SortStableFunc(totals, func(a, b RegionTotal) int {
		switch {
		case a.Population > b.Population:
			return -1
		case a.Population < b.Population:
			return 1
		}
		return 0
	})

	if r.current != nil {
		r.current.Destroy()
		r.live--
	}

	var peak int64
	for _, t := range totals {
		peak = max(peak, t.Population)
	}
	ticks, axisMax := niceTicks(float64(peak), chartTickCount)

	bars := make([]Bar, len(totals))
	for i, t := range totals {
		bars[i] = Bar{
			Region:     t.Region,
			Population: t.Population,
			Color:      Palette[i%len(Palette)],
			Tooltip:    " " + FormatGrouped(float64(t.Population)) + " hab.",
		}
		if axisMax > 0 {
			bars[i].Height = float64(t.Population) / axisMax
		}
	}

	r.nextID++
	r.current = &Chart{
		ID:    r.nextID,
		Label: ChartLabel,
		Bars:  bars,
		Ticks: ticks,
		Max:   axisMax,
	}
	r.live++
	return r.current
}

// Current returns the live chart, or nil before the first render.
func (r *ChartRenderer) Current() *Chart {
	return r.current
}

// Live returns the number of charts not yet destroyed. Never more than one.
func (r *ChartRenderer) Live() int {
	return r.live
}

// Destroy releases the live chart, leaving none.
func (r *ChartRenderer) Destroy() {
	if r.current != nil {
		r.current.Destroy()
		r.current = nil
		r.live--
	}
}

// niceTicks splits [0, peak] into about n intervals with a 1-2-5 step and
// returns the labelled ticks plus the axis maximum.
func niceTicks(peak float64, n int) ([]Tick, float64) {
	if peak <= 0 {
		return []Tick{{Value: 0, Label: FormatTick(0)}}, 0
	}

	raw := peak / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch norm := raw / mag; {
	case norm <= 1:
		step = mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}

	count := int(math.Ceil(peak / step))
	ticks := make([]Tick, 0, count+1)
	for i := 0; i <= count; i++ {
		v := float64(i) * step
		ticks = append(ticks, Tick{Value: v, Label: FormatTick(v)})
	}
	return ticks, float64(count) * step
}
