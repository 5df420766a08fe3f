package core

import (
	"strconv"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// TableColumns is the number of columns in the country table:
// flag, name, capital, region, subregion, population, area.
const TableColumns = 7

// EmptyTableText is shown in the placeholder row when a load returns nothing.
const EmptyTableText = "Sin resultados."

// TableRow is one rendered country. Every text field is ready for display:
// absent values already hold Placeholder.
type TableRow struct {
	Key        string `json:"key"`
	FlagURL    string `json:"flag_url,omitempty"` // empty: render Placeholder instead of an image
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Region     string `json:"region"`
	HasRegion  bool   `json:"has_region"` // region is shown as a badge only when present
	Subregion  string `json:"subregion"`
	Population string `json:"population"`
	Area       string `json:"area"`
}

// PlaceholderRow is the single full-width row shown for an empty result.
type PlaceholderRow struct {
	Text    string `json:"text"`
	ColSpan int    `json:"colspan"`
}

// TableView is the complete content of the table body plus its row-count label.
// Exactly one of Rows and Placeholder is populated.
type TableView struct {
	Rows        []TableRow      `json:"rows,omitempty"`
	Placeholder *PlaceholderRow `json:"placeholder,omitempty"`
	RowCount    string          `json:"row_count"`
}

// TableRenderer projects country lists into table views.
type TableRenderer struct{}

// Render rebuilds the whole table for list. Nothing from a previous render
// survives; rows follow list order.
func (TableRenderer) Render(list []countries.Country) TableView {
	if len(list) == 0 {
		return TableView{
			Placeholder: &PlaceholderRow{Text: EmptyTableText, ColSpan: TableColumns},
			RowCount:    "",
		}
	}

	rows := make([]TableRow, len(list))
	for i, c := range list {
		rows[i] = buildRow(i, c)
	}
	return TableView{
		Rows:     rows,
		RowCount: strconv.Itoa(len(list)) + " países",
	}
}

func buildRow(i int, c countries.Country) TableRow {
	row := TableRow{
		Key:        c.ISOCode,
		Name:       c.Name,
		Capital:    textOrPlaceholder(c.Capital),
		Region:     textOrPlaceholder(c.Region),
		HasRegion:  c.Region != nil && *c.Region != "",
		Subregion:  textOrPlaceholder(c.Subregion),
		Population: Placeholder,
		Area:       Placeholder,
	}
	if row.Key == "" {
		row.Key = strconv.Itoa(i)
	}
	if c.FlagURL != nil {
		row.FlagURL = *c.FlagURL
	}
	if c.Population != nil {
		row.Population = FormatGrouped(float64(*c.Population))
	}
	if c.Area != nil {
		row.Area = FormatGrouped(*c.Area)
	}
	return row
}
