package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/countrydash/internal/core"
)

// SVG geometry in user units; the element scales to its container.
const (
	chartWidth  = 640.0
	chartHeight = 320.0
	padLeft     = 56.0
	padRight    = 12.0
	padTop      = 12.0
	padBottom   = 36.0
	barGap      = 0.25 // fraction of each slot left empty
)

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// Chart draws the population-by-region bar chart as inline SVG. A nil chart
// renders an empty frame.
func Chart(chart *core.Chart) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="bg-white rounded-xl shadow p-4">`)
		h.raw(`<h2 class="font-semibold text-gray-700 mb-2">`)
		h.text(core.ChartLabel)
		h.raw(`</h2>`)

		h.raw(`<svg id="chart" role="img" class="w-full h-72"`)
		h.attr("viewBox", "0 0 "+num(chartWidth)+" "+num(chartHeight))
		h.attr("aria-label", core.ChartLabel)
		if chart != nil {
			h.attr("data-chart-id", strconv.FormatUint(chart.ID, 10))
		}
		h.raw(`>`)

		if chart != nil {
			plotH := chartHeight - padTop - padBottom
			plotW := chartWidth - padLeft - padRight

			for _, tick := range chart.Ticks {
				y := padTop + plotH
				if chart.Max > 0 {
					y -= plotH * tick.Value / chart.Max
				}
				h.raw(`<line stroke="#e5e7eb"`)
				h.attr("x1", num(padLeft))
				h.attr("x2", num(chartWidth-padRight))
				h.attr("y1", num(y))
				h.attr("y2", num(y))
				h.raw(`/><text text-anchor="end" font-size="11" fill="#6b7280"`)
				h.attr("x", num(padLeft-6))
				h.attr("y", num(y+4))
				h.raw(`>`)
				h.text(tick.Label)
				h.raw(`</text>`)
			}

			if n := len(chart.Bars); n > 0 {
				slot := plotW / float64(n)
				width := slot * (1 - barGap)
				for i, bar := range chart.Bars {
					x := padLeft + float64(i)*slot + (slot-width)/2
					barH := plotH * bar.Height
					y := padTop + plotH - barH

					h.raw(`<g><rect rx="6"`)
					h.attr("x", num(x))
					h.attr("y", num(y))
					h.attr("width", num(width))
					h.attr("height", num(barH))
					h.attr("fill", bar.Color)
					h.raw(`><title>`)
					h.text(bar.Region + ":" + bar.Tooltip)
					h.raw(`</title></rect><text text-anchor="middle" font-size="11" fill="#374151"`)
					h.attr("x", num(x+width/2))
					h.attr("y", num(chartHeight-padBottom+16))
					h.raw(`>`)
					h.text(bar.Region)
					h.raw(`</text></g>`)
				}
			}
		}
		h.raw(`</svg></div>`)
	})
}
