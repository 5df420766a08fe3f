package core

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// ErrUnknownSortKey is returned by ParseSortKey for a column that cannot be sorted.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey names a sortable country column.
type SortKey string

const (
	SortName       SortKey = "name"
	SortCapital    SortKey = "capital"
	SortRegion     SortKey = "region"
	SortSubregion  SortKey = "subregion"
	SortPopulation SortKey = "population"
	SortArea       SortKey = "area"
)

// SortKeys lists every sortable column in table order.
var SortKeys = []SortKey{SortName, SortCapital, SortRegion, SortSubregion, SortPopulation, SortArea}

// ParseSortKey validates a column name coming from the page.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Sorter holds the active sort column and direction. The zero value is not
// ready for use; start from NewSorter.
type Sorter struct {
	Key       SortKey `json:"key"`
	Ascending bool    `json:"ascending"`
}

// NewSorter returns the default ordering: name, ascending.
func NewSorter() Sorter {
	return Sorter{Key: SortName, Ascending: true}
}

// Sort makes key the active column, flipping the direction when key is
// already active and resetting to ascending otherwise, then returns list in
// the new order. Calling Sort with the same key three times yields
// ascending, descending, ascending.
func (s *Sorter) Sort(list []countries.Country, key SortKey) []countries.Country {
	if s.Key == key {
		s.Ascending = !s.Ascending
	} else {
		s.Key = key
		s.Ascending = true
	}
	return s.Reapply(list)
}

// Reapply returns a new slice ordered by the active column and direction.
// The input is never modified. Text compares case-insensitively with a
// missing value treated as ""; a missing number sorts below every present
// number. Ties keep their input order.
func (s Sorter) Reapply(list []countries.Country) []countries.Country {
	type keyed struct {
		c    countries.Country
		text string
	}

	// A Caser is stateful; one per call keeps Reapply safe for concurrent use.
	lower := cases.Lower(language.Und)
	numeric := s.Key == SortPopulation || s.Key == SortArea

	items := make([]keyed, len(list))
	for i, c := range list {
		items[i].c = c
		if !numeric {
			items[i].text = lower.String(textField(c, s.Key))
		}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		var r int
		switch s.Key {
		case SortPopulation:
			r = compareOptional(a.c.Population, b.c.Population)
		case SortArea:
			r = compareOptional(a.c.Area, b.c.Area)
		default:
			r = strings.Compare(a.text, b.text)
		}
		if !s.Ascending {
			r = -r
		}
		return r
	})

	out := make([]countries.Country, len(items))
	for i := range items {
		out[i] = items[i].c
	}
	return out
}

func textField(c countries.Country, key SortKey) string {
	var p *string
	switch key {
	case SortName:
		return c.Name
	case SortCapital:
		p = c.Capital
	case SortRegion:
		p = c.Region
	case SortSubregion:
		p = c.Subregion
	}
	if p == nil {
		return ""
	}
	return *p
}

func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}
