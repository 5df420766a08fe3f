package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/countrydash/internal/core"
	"github.com/JonMunkholm/countrydash/internal/logging"
	"github.com/JonMunkholm/countrydash/internal/web/templates"
)

type contextKey string

const ctxKeyDashboard contextKey = "dashboard"

// withDashboard stores the session's dashboard in ctx and tags logs with its id.
func withDashboard(ctx context.Context, d *core.Dashboard) context.Context {
	ctx = context.WithValue(ctx, ctxKeyDashboard, d)
	return logging.WithSessionID(ctx, d.ID())
}

// dashboardFrom returns the dashboard stored by requireSession.
func dashboardFrom(ctx context.Context) *core.Dashboard {
	d, _ := ctx.Value(ctxKeyDashboard).(*core.Dashboard)
	return d
}

// sessionID reads the page session id from the HTMX header, falling back to
// the session query parameter for plain API clients.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(templates.SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session")
}

// requireSession resolves the page session or answers 410 Gone.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := s.sessions.Get(sessionID(r))
		if err != nil {
			s.respondError(w, r, err, http.StatusGone)
			return
		}
		next.ServeHTTP(w, r.WithContext(withDashboard(r.Context(), d)))
	})
}
