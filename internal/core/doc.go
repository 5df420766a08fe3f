// Package core holds the dashboard logic: sorting and number formatting,
// the table, chart and stats view models, the toast, and the per-session
// orchestrator that ties them to the country backend.
//
// Nothing here knows about HTTP or HTML. The web layer drives a [Dashboard]
// and renders the [Snapshot] it returns.
//
// # Session Flow
//
// A full page load creates a session through [Sessions.Create] and calls
// [Dashboard.Init]:
//
//  1. Regions are fetched; a failure leaves the selector empty and is only logged
//  2. Countries are fetched with the empty filter
//  3. The list is sorted with the active [Sorter] and table, chart and stats
//     are rendered from that one list
//
// Later requests find the session by id and call [Dashboard.Filter],
// [Dashboard.Sort] or [Dashboard.Sync].
//
// # Views
//
// Renderers return plain values ([TableView], [*Chart], [StatsView],
// [ToastView]) so they can be tested without a browser. Absent fields are
// shown as [Placeholder].
//
// # Concurrency
//
// A [Dashboard] serializes state changes with a mutex but never holds it
// across a backend call. Country loads are numbered, and a response that
// arrives after a newer load was started is dropped. Syncs across every
// session share one [SyncLimiter].
package core
