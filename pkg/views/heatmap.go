package views

import (
	"time"

	"github.com/aretw0/myflomo/pkg/core"
)

// DefaultHeatmapWeeks is the trailing window the activity heatmap covers.
const DefaultHeatmapWeeks = 10

// Cell is one calendar day of the heatmap.
type Cell struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Heatmap is a Monday-aligned grid: Columns[week][weekday], weekday 0 is
// Monday and 6 is Sunday.
type Heatmap struct {
	Start   time.Time `json:"start"`
	Columns [][7]Cell `json:"columns"`
}

// Cells returns the grid column by column, Monday to Sunday.
func (h Heatmap) Cells() []Cell {
	out := make([]Cell, 0, len(h.Columns)*7)
	for _, col := range h.Columns {
		out = append(out, col[:]...)
	}
	return out
}

// Total sums all cell counts.
func (h Heatmap) Total() int {
	total := 0
	for _, c := range h.Cells() {
		total += c.Count
	}
	return total
}

// BucketForHeatmap counts notes created per calendar day over the weeks
// ending at windowEnd. The grid starts on the Monday of the week containing
// windowEnd minus (weeks-1) weeks. Days are calendar days in windowEnd's
// location. weeks <= 0 means DefaultHeatmapWeeks.
func BucketForHeatmap(notes []core.Note, windowEnd time.Time, weeks int) Heatmap {
	if weeks <= 0 {
		weeks = DefaultHeatmapWeeks
	}
	loc := windowEnd.Location()

	from := windowEnd.AddDate(0, 0, -7*(weeks-1))
	offset := (int(from.Weekday()) + 6) % 7
	start := time.Date(from.Year(), from.Month(), from.Day()-offset, 0, 0, 0, 0, loc)

	counts := make(map[string]int, len(notes))
	for _, n := range notes {
		counts[dayKey(n.CreatedAt.In(loc))]++
	}

	h := Heatmap{Start: start, Columns: make([][7]Cell, weeks)}
	for col := 0; col < weeks; col++ {
		for row := 0; row < 7; row++ {
			day := time.Date(start.Year(), start.Month(), start.Day()+col*7+row, 0, 0, 0, 0, loc)
			h.Columns[col][row] = Cell{Date: day, Count: counts[dayKey(day)]}
		}
	}
	return h
}

// Level buckets a day's count into an intensity from 0 (none) to 4.
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	case count <= 4:
		return 3
	default:
		return 4
	}
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
