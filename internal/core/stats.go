package core

import (
	"strconv"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// StatsView holds the four summary cards.
type StatsView struct {
	Total      string `json:"total"`
	Population string `json:"population"`
	Regions    string `json:"regions"`
	MaxCountry string `json:"max_country"`
}

// StatsPresenter keeps the summary cards current. Country stats and the
// region count are updated independently, as they come from different loads.
type StatsPresenter struct {
	view StatsView
}

// NewStatsPresenter returns a presenter with every card blank.
func NewStatsPresenter() StatsPresenter {
	return StatsPresenter{view: StatsView{
		Total:      Placeholder,
		Population: Placeholder,
		Regions:    Placeholder,
		MaxCountry: Placeholder,
	}}
}

// Update recomputes total, population and the most populous country from
// list. A missing population counts as zero; ties go to the first record.
func (p *StatsPresenter) Update(list []countries.Country) StatsView {
	if len(list) == 0 {
		p.view.Total = Placeholder
		p.view.Population = Placeholder
		p.view.MaxCountry = Placeholder
		return p.view
	}

	var sum int64
	best := 0
	for i, c := range list {
		pop := populationOf(c)
		sum += pop
		if pop > populationOf(list[best]) {
			best = i
		}
	}

	p.view.Total = strconv.Itoa(len(list))
	p.view.Population = FormatCompact(sum)
	p.view.MaxCountry = list[best].Name
	return p.view
}

// RegionCount shows n, or Placeholder when n is zero.
func (p *StatsPresenter) RegionCount(n int) StatsView {
	if n == 0 {
		p.view.Regions = Placeholder
	} else {
		p.view.Regions = strconv.Itoa(n)
	}
	return p.view
}

// View returns the current cards.
func (p *StatsPresenter) View() StatsView {
	return p.view
}

func populationOf(c countries.Country) int64 {
	if c.Population == nil {
		return 0
	}
	return *c.Population
}
