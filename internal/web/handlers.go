package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/countrydash/internal/core"
	"github.com/JonMunkholm/countrydash/internal/logging"
	"github.com/JonMunkholm/countrydash/internal/web/templates"
)

// handleIndex starts a new page session, runs the initial load and renders
// the full page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d := s.sessions.Create()
	ctx := withDashboard(r.Context(), d)

	d.Init(ctx)
	logging.FromContext(ctx).Debug("page session started")

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Page(d.View(), s.now()).Render(ctx, w)
}

// handleSync triggers a backend sync and re-renders the whole dashboard,
// since regions may have changed. A click while this session is already
// syncing just re-renders the current state.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	d := dashboardFrom(r.Context())

	if !d.Sync(r.Context()) {
		logging.FromContext(r.Context()).Debug("sync already running, ignoring click")
	}

	snap := d.View()
	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, snap)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Dashboard(snap, s.now()).Render(r.Context(), w)
	templates.Toast(snap.Toast, s.now(), true).Render(r.Context(), w)
}

// handleCountries applies the search and region filter and re-renders the
// results. Regions are not reloaded.
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	d := dashboardFrom(r.Context())
	q := r.URL.Query()

	d.Filter(r.Context(), q.Get("search"), q.Get("region"))

	snap := d.View()
	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, snap)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Results(snap, s.now(), true).Render(r.Context(), w)
}

// handleSort re-sorts the held list and re-renders only the table.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseSortKey(chi.URLParam(r, "key"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	d := dashboardFrom(r.Context())
	table := d.Sort(key)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Table(table, d.Sorter()).Render(r.Context(), w)
}

// handleToast returns the toast in its current state; HTMX polls it when a
// toast is due to expire.
func (s *Server) handleToast(w http.ResponseWriter, r *http.Request) {
	d := dashboardFrom(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Toast(d.Toast(), s.now(), false).Render(r.Context(), w)
}

// handleView returns the session snapshot as JSON.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dashboardFrom(r.Context()).View())
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string                 `json:"status"`
	Sessions int                    `json:"sessions"`
	Syncs    core.SyncLimiterStatus `json:"syncs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Sessions: s.sessions.Len(),
		Syncs:    s.limiter.Status(),
	})
}
