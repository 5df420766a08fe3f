package core

import (
	"fmt"
	"testing"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

func chileJapan() []countries.Country {
	return []countries.Country{
		{Name: "Chile", Population: countries.Int(19_000_000), Region: countries.String("Americas")},
		{Name: "Japan", Population: countries.Int(125_000_000), Region: countries.String("Asia")},
	}
}

func TestChartRenderer_OrdersByTotalDescending(t *testing.T) {
	var r ChartRenderer
	chart := r.Render(chileJapan())

	if len(chart.Bars) != 2 {
		t.Fatalf("len(Bars) = %d, want 2", len(chart.Bars))
	}
	if chart.Bars[0].Region != "Asia" || chart.Bars[1].Region != "Americas" {
		t.Errorf("bar order = [%s %s], want [Asia Americas]", chart.Bars[0].Region, chart.Bars[1].Region)
	}
	if chart.Bars[0].Color != Palette[0] || chart.Bars[1].Color != Palette[1] {
		t.Errorf("colors = [%s %s], want first two palette entries", chart.Bars[0].Color, chart.Bars[1].Color)
	}
	if chart.Bars[0].Tooltip != " 125.000.000 hab." {
		t.Errorf("Tooltip = %q", chart.Bars[0].Tooltip)
	}
	if chart.Label != "Población total" {
		t.Errorf("Label = %q", chart.Label)
	}
}

func TestChartRenderer_DestroysPrevious(t *testing.T) {
	var r ChartRenderer

	first := r.Render(chileJapan())
	second := r.Render(chileJapan())

	if !first.Destroyed() {
		t.Error("first chart should be destroyed after a new render")
	}
	if second.Destroyed() {
		t.Error("current chart should be live")
	}
	if r.Live() != 1 {
		t.Errorf("Live() = %d, want 1", r.Live())
	}
	if r.Current() != second {
		t.Error("Current() should return the latest chart")
	}
	if second.ID <= first.ID {
		t.Errorf("chart IDs should increase: %d then %d", first.ID, second.ID)
	}

	r.Destroy()
	if r.Live() != 0 || r.Current() != nil || !second.Destroyed() {
		t.Error("Destroy should leave no live chart")
	}
}

func TestChartRenderer_PaletteWraps(t *testing.T) {
	var list []countries.Country
	for i := 0; i < 12; i++ {
		list = append(list, countries.Country{
			Name:       fmt.Sprintf("c%d", i),
			Region:     countries.String(fmt.Sprintf("r%02d", i)),
			Population: countries.Int(int64(1000 - i)),
		})
	}

	var r ChartRenderer
	chart := r.Render(list)

	if len(chart.Bars) != 12 {
		t.Fatalf("len(Bars) = %d, want 12", len(chart.Bars))
	}
	if chart.Bars[10].Color != Palette[0] || chart.Bars[11].Color != Palette[1] {
		t.Errorf("bars 10 and 11 should wrap to the start of the palette, got %s %s",
			chart.Bars[10].Color, chart.Bars[11].Color)
	}
}

func TestChartRenderer_Ticks(t *testing.T) {
	var r ChartRenderer
	chart := r.Render(chileJapan())

	if chart.Max < 125_000_000 {
		t.Errorf("Max = %v, should cover the tallest bar", chart.Max)
	}
	if chart.Bars[0].Height <= 0 || chart.Bars[0].Height > 1 {
		t.Errorf("Height = %v, want within (0, 1]", chart.Bars[0].Height)
	}

	want := []string{"0", "50M", "100M", "150M"}
	if len(chart.Ticks) != len(want) {
		t.Fatalf("ticks = %+v, want labels %v", chart.Ticks, want)
	}
	for i, label := range want {
		if chart.Ticks[i].Label != label {
			t.Errorf("tick %d = %q, want %q", i, chart.Ticks[i].Label, label)
		}
	}
}

func TestChartRenderer_Empty(t *testing.T) {
	var r ChartRenderer
	chart := r.Render(nil)

	if len(chart.Bars) != 0 {
		t.Errorf("expected no bars, got %d", len(chart.Bars))
	}
	if chart.Max != 0 {
		t.Errorf("Max = %v, want 0", chart.Max)
	}
}
