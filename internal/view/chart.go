package view

import (
	"fmt"
	"math"

	"kharcha/internal/core"
)

// Pie geometry, in SVG user units.
const (
	PieSize   = 200
	pieCenter = PieSize / 2
	pieRadius = 90
)

// Segment is one slice of the category pie.
type Segment struct {
	Name    string
	Color   string
	Value   core.Amount
	Share   float64 // fraction of the chart total, 0..1
	Percent string
	Path    string // SVG path data; empty for a zero slice
}

// Segments lays the totals out clockwise from twelve o'clock, in category
// order. Only positive values take up space on the chart.
func Segments(totals []core.CategoryAmount) []Segment {
	var sum float64
	for _, t := range totals {
		if t.Amount > 0 {
			sum += float64(t.Amount)
		}
	}

	segs := make([]Segment, len(totals))
	start := 0.0
	for i, t := range totals {
		seg := Segment{Name: t.Name, Color: t.Color, Value: t.Amount, Percent: "0%"}
		if sum > 0 && t.Amount > 0 {
			seg.Share = float64(t.Amount) / sum
			seg.Percent = fmt.Sprintf("%.1f%%", seg.Share*100)
			seg.Path = arcPath(start, start+seg.Share)
			start += seg.Share
		}
		segs[i] = seg
	}
	return segs
}

// arcPath draws a wedge between two fractions of a turn.
func arcPath(from, to float64) string {
	if to-from >= 1-1e-9 {
		// A single arc cannot close on itself; draw two halves.
		top := pieCenter - pieRadius
		bottom := pieCenter + pieRadius
		return fmt.Sprintf("M %d %d A %d %d 0 1 1 %d %d A %d %d 0 1 1 %d %d Z",
			pieCenter, top, pieRadius, pieRadius, pieCenter, bottom, pieRadius, pieRadius, pieCenter, top)
	}

	x1, y1 := point(from)
	x2, y2 := point(to)
	large := 0
	if to-from > 0.5 {
		large = 1
	}
	return fmt.Sprintf("M %d %d L %.2f %.2f A %d %d 0 %d 1 %.2f %.2f Z",
		pieCenter, pieCenter, x1, y1, pieRadius, pieRadius, large, x2, y2)
}

func point(turn float64) (float64, float64) {
	a := 2*math.Pi*turn - math.Pi/2
	return pieCenter + pieRadius*math.Cos(a), pieCenter + pieRadius*math.Sin(a)
}
