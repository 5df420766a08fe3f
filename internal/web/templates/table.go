package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/countrydash/internal/core"
)

type column struct {
	key   core.SortKey
	label string
	right bool
}

var columns = []column{
	{key: core.SortName, label: "País"},
	{key: core.SortCapital, label: "Capital"},
	{key: core.SortRegion, label: "Región"},
	{key: core.SortSubregion, label: "Subregión"},
	{key: core.SortPopulation, label: "Población", right: true},
	{key: core.SortArea, label: "Área (km²)", right: true},
}

// Table renders the country table with its header and row-count label.
// Sort headers post to /sort/{key} and swap this element.
func Table(view core.TableView, sort core.Sorter) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div id="country-table" class="bg-white rounded-xl shadow overflow-hidden">`)
		h.raw(`<div class="flex items-center justify-between px-4 py-3 border-b">`)
		h.raw(`<h2 class="font-semibold text-gray-700">Países</h2>`)
		h.raw(`<span id="rowCount" class="text-sm text-gray-500">`)
		h.text(view.RowCount)
		h.raw(`</span></div>`)

		h.raw(`<div class="overflow-x-auto"><table class="min-w-full text-sm">`)
		h.raw(`<thead class="bg-gray-50 text-gray-600 text-xs uppercase"><tr>`)
		h.raw(`<th class="px-4 py-2 text-left">Bandera</th>`)
		for _, col := range columns {
			class := "px-4 py-2 cursor-pointer select-none hover:text-indigo-600 "
			if col.right {
				class += "text-right"
			} else {
				class += "text-left"
			}
			h.raw(`<th`)
			h.attr("class", class)
			h.attr("data-sort", string(col.key))
			h.attr("hx-post", "/sort/"+string(col.key))
			h.attr("hx-target", "#country-table")
			h.attr("hx-swap", "outerHTML")
			h.raw(`>`)
			h.text(col.label)
			if sort.Key == col.key {
				if sort.Ascending {
					h.raw(` ▲`)
				} else {
					h.raw(` ▼`)
				}
			}
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead>`)

		h.raw(`<tbody id="tableBody" class="divide-y divide-gray-100">`)
		switch {
		case view.Placeholder != nil:
			h.raw(`<tr><td`)
			h.attr("colspan", strconv.Itoa(view.Placeholder.ColSpan))
			h.raw(` class="text-center py-10 text-gray-400">`)
			h.text(view.Placeholder.Text)
			h.raw(`</td></tr>`)
		case len(view.Rows) == 0:
			h.raw(`<tr><td`)
			h.attr("colspan", strconv.Itoa(core.TableColumns))
			h.raw(` class="text-center py-10 text-gray-400">Cargando...</td></tr>`)
		default:
			for _, row := range view.Rows {
				tableRow(h, row)
			}
		}
		h.raw(`</tbody></table></div></div>`)
	})
}

func tableRow(h *html, row core.TableRow) {
	h.raw(`<tr class="hover:bg-indigo-50 transition-colors"`)
	h.attr("data-key", row.Key)
	h.raw(`>`)

	h.raw(`<td class="px-4 py-2">`)
	if row.FlagURL != "" {
		h.raw(`<img`)
		h.url("src", row.FlagURL)
		h.attr("alt", row.Name)
		h.raw(` class="w-8 h-5 object-cover rounded shadow-sm" loading="lazy">`)
	} else {
		h.text(core.Placeholder)
	}
	h.raw(`</td>`)

	h.raw(`<td class="px-4 py-2 font-medium">`)
	h.text(row.Name)
	h.raw(`</td><td class="px-4 py-2 text-gray-500">`)
	h.text(row.Capital)
	h.raw(`</td><td class="px-4 py-2">`)
	if row.HasRegion {
		h.raw(`<span class="inline-block bg-indigo-100 text-indigo-700 text-xs px-2 py-0.5 rounded-full">`)
		h.text(row.Region)
		h.raw(`</span>`)
	} else {
		h.text(row.Region)
	}
	h.raw(`</td><td class="px-4 py-2 text-gray-500 text-xs">`)
	h.text(row.Subregion)
	h.raw(`</td><td class="px-4 py-2 text-right tabular-nums">`)
	h.text(row.Population)
	h.raw(`</td><td class="px-4 py-2 text-right tabular-nums">`)
	h.text(row.Area)
	h.raw(`</td></tr>`)
}
