package templates

import (
	"context"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/countrydash/internal/core"
)

const toastBaseClass = "fixed top-4 right-4 z-50 px-5 py-3 rounded-lg shadow-lg text-white text-sm font-medium"

// Toast renders the toast element. A visible toast asks the server again
// once it is due to expire, so it disappears when the session's timer
// fires. With oob set it is marked for an HTMX out-of-band swap.
func Toast(view core.ToastView, now time.Time, oob bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div id="toast"`)
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		if !view.Visible {
			h.attr("class", toastBaseClass+" hidden")
			h.raw(`></div>`)
			return
		}

		h.attr("class", toastBaseClass+" "+view.Color.Class())
		h.attr("role", "status")
		h.attr("hx-get", "/toast")
		h.attr("hx-trigger", "load delay:"+strconv.FormatInt(remaining(view, now).Milliseconds(), 10)+"ms")
		h.attr("hx-swap", "outerHTML")
		h.raw(`>`)
		h.text(view.Message)
		h.raw(`</div>`)
	})
}

// minRecheck keeps a toast whose timer is about to fire from polling in a tight loop.
const minRecheck = 100 * time.Millisecond

func remaining(view core.ToastView, now time.Time) time.Duration {
	return max(view.ExpiresAt.Sub(now), minRecheck)
}
