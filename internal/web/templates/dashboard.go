package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/countrydash/internal/core"
)

// Sync button labels.
const (
	SyncIdleLabel = "Sincronizar datos"
	SyncBusyLabel = "Sincronizando..."
)

// AllRegionsLabel is the first region option, meaning "no region filter".
const AllRegionsLabel = "Todas las regiones"

// Dashboard renders everything inside #dashboard: header, filters and
// results. POST /sync swaps the whole element.
func Dashboard(snap core.Snapshot, now time.Time) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<main id="dashboard" class="max-w-7xl mx-auto p-6 space-y-6">`)

		h.raw(`<header class="flex flex-wrap items-center justify-between gap-4">`)
		h.raw(`<h1 class="text-2xl font-bold text-gray-800">🌎 Países del mundo</h1>`)
		h.component(ctx, SyncButton(snap.Syncing))
		h.raw(`</header>`)

		h.raw(`<form id="filters" class="flex flex-wrap gap-3" onsubmit="return false">`)
		h.raw(`<input id="searchInput" name="search" type="search" placeholder="Buscar país..." autocomplete="off"`)
		h.raw(` class="flex-1 min-w-[12rem] border rounded-lg px-3 py-2"`)
		h.attr("value", snap.Search)
		h.raw(` hx-get="/countries" hx-trigger="input changed delay:300ms, search" hx-target="#results" hx-swap="outerHTML" hx-include="#filters" hx-sync="#filters:replace">`)
		h.component(ctx, RegionSelect(snap.Regions, snap.Region))
		h.raw(`</form>`)

		h.component(ctx, Results(snap, now, false))
		h.raw(`</main>`)
	})
}

// Results renders stats, chart and table. Filter changes swap only this
// element; the toast travels with it out of band when oob is set.
func Results(snap core.Snapshot, now time.Time, oob bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section id="results" class="space-y-6">`)
		h.component(ctx, Stats(snap.Stats))
		h.component(ctx, Chart(snap.Chart))
		h.component(ctx, Table(snap.Table, snap.Sort))
		h.raw(`</section>`)
		if oob {
			h.component(ctx, Toast(snap.Toast, now, true))
		}
	})
}

// SyncButton renders the sync trigger. While a request is in flight HTMX
// disables it and the busy label shows.
func SyncButton(syncing bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<button id="syncBtn" type="button" class="sync-btn bg-indigo-600 hover:bg-indigo-700 disabled:opacity-60 text-white px-4 py-2 rounded-lg font-medium"`)
		h.raw(` hx-post="/sync" hx-target="#dashboard" hx-swap="outerHTML" hx-disabled-elt="this"`)
		if syncing {
			h.raw(` disabled`)
		}
		h.raw(`>`)
		if syncing {
			h.raw(`<span class="animate-spin inline-block">🔄</span> `)
			h.text(SyncBusyLabel)
		} else {
			h.raw(`<span class="sync-idle"><span>🔄</span> `)
			h.text(SyncIdleLabel)
			h.raw(`</span><span class="sync-busy"><span class="animate-spin inline-block">🔄</span> `)
			h.text(SyncBusyLabel)
			h.raw(`</span>`)
		}
		h.raw(`</button>`)
	})
}

// RegionSelect renders the region filter. The selected region is marked
// only when it is still in regions.
func RegionSelect(regions []string, selected string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<select id="regionSelect" name="region" class="border rounded-lg px-3 py-2"`)
		h.raw(` hx-get="/countries" hx-trigger="change" hx-target="#results" hx-swap="outerHTML" hx-include="#filters">`)
		h.raw(`<option value="">`)
		h.text(AllRegionsLabel)
		h.raw(`</option>`)
		for _, region := range regions {
			h.raw(`<option`)
			h.attr("value", region)
			if region == selected {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(region)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	})
}

// Stats renders the four summary cards.
func Stats(view core.StatsView) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div id="stats" class="grid grid-cols-2 md:grid-cols-4 gap-4">`)
		statCard(h, "statTotal", "Países", view.Total)
		statCard(h, "statPop", "Población total", view.Population)
		statCard(h, "statRegions", "Regiones", view.Regions)
		statCard(h, "statMax", "Más poblado", view.MaxCountry)
		h.raw(`</div>`)
	})
}

func statCard(h *html, id, label, value string) {
	h.raw(`<div class="bg-white rounded-xl shadow p-4"><p class="text-xs uppercase text-gray-500">`)
	h.text(label)
	h.raw(`</p><p class="text-2xl font-bold text-gray-800"`)
	h.attr("id", id)
	h.raw(`>`)
	h.text(value)
	h.raw(`</p></div>`)
}
