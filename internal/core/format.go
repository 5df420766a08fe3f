package core

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// Placeholder is shown wherever a value is absent.
const Placeholder = "—"

// groupedFormat renders integers the es-AR way: "." between thousands and no
// fractional part.
const groupedFormat = "#.###,"

// FormatGrouped renders n as an integer with es-AR thousands grouping,
// rounding away any fractional part. 19000000 → "19.000.000".
func FormatGrouped(n float64) string {
	return humanize.FormatFloat(groupedFormat, n)
}

// FormatCompact abbreviates large totals: billions with two decimals and a
// "B", millions with one decimal and an "M", anything smaller grouped.
//
//	FormatCompact(3_200_000_000) == "3.20B"
//	FormatCompact(2_500_000)     == "2.5M"
//	FormatCompact(999)           == "999"
func FormatCompact(n int64) string {
	v := float64(n)
	switch {
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 2, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	default:
		return FormatGrouped(v)
	}
}

// FormatTick labels a chart y-axis value: billions with one decimal,
// millions with none, smaller values as plain numbers.
func FormatTick(v float64) string {
	switch {
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 1, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 0, 64) + "M"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// RegionTotal is the summed population of one region.
type RegionTotal struct {
	Region     string `json:"region"`
	Population int64  `json:"population"`
}

// AggregateByRegion sums population per region, skipping records without a
// region or without a population. Regions appear in order of first encounter.
func AggregateByRegion(list []countries.Country) []RegionTotal {
	var totals []RegionTotal
	index := make(map[string]int)

	for _, c := range list {
		if c.Region == nil || *c.Region == "" || c.Population == nil {
			continue
		}
		i, ok := index[*c.Region]
		if !ok {
			i = len(totals)
			index[*c.Region] = i
			totals = append(totals, RegionTotal{Region: *c.Region})
		}
		totals[i].Population += *c.Population
	}
	return totals
}

func textOrPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}
