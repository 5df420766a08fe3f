package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/countrydash/internal/core"
)

// Script sources. The CSP in the web package allows these hosts.
const (
	HTMXScript     = "https://unpkg.com/htmx.org@2.0.4"
	TailwindScript = "https://cdn.tailwindcss.com"
)

// SessionHeader carries the page session id on every HTMX request.
const SessionHeader = "X-Dashboard-Session"

// htmxConfig lets error fragments (4xx/5xx) swap so their message shows.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

const pageStyle = `.sync-busy{display:none}.htmx-request .sync-busy,.htmx-request.sync-btn .sync-busy{display:inline}.htmx-request.sync-btn .sync-idle{display:none}`

// Page renders the full dashboard document for a fresh page session.
func Page(snap core.Snapshot, now time.Time) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Países del mundo</title>`)
		h.raw(`<meta name="htmx-config"`)
		h.attr("content", htmxConfig)
		h.raw(`>`)
		h.raw(`<script`)
		h.url("src", TailwindScript)
		h.raw(`></script><script`)
		h.url("src", HTMXScript)
		h.raw(`></script><style>`)
		h.raw(pageStyle)
		h.raw(`</style></head>`)

		h.raw(`<body class="bg-gray-100 min-h-screen"`)
		h.attr("hx-headers", `{"`+SessionHeader+`":"`+snap.SessionID+`"}`)
		h.raw(`>`)
		h.component(ctx, Toast(snap.Toast, now, false))
		h.component(ctx, Dashboard(snap, now))
		h.raw(`</body></html>`)
	})
}

// ErrorAlert renders an error as a red toast-styled fragment.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div id="toast" role="alert"`)
		h.attr("class", toastBaseClass+" "+core.ToastRed.Class())
		h.raw(`><p>`)
		h.text(message)
		h.raw(`</p>`)
		if action != "" {
			h.raw(`<p class="text-xs opacity-90">`)
			h.text(action)
			if code != "" {
				h.text(" (" + code + ")")
			}
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}
