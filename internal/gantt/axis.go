package gantt

import (
	"fmt"
	"time"

	"gantt2svg/internal/measure"
	"gantt2svg/internal/schedule"
)

// SegmentKind distinguishes the two axis bands.
type SegmentKind string

const (
	SegmentMonth SegmentKind = "month"
	SegmentYear  SegmentKind = "year"
)

// Segment is one labelled interval of an axis band. Segments of a band are
// contiguous and do not overlap.
type Segment struct {
	Kind  SegmentKind
	Label string
	Start time.Time
	End   time.Time
	X0    float64
	X1    float64
}

// Width is the pixel width of the segment.
func (s Segment) Width() float64 { return s.X1 - s.X0 }

// Boundary is a vertical month gridline. YearEdge marks the December to
// January boundary, drawn heavier than the others.
type Boundary struct {
	Date     time.Time
	X        float64
	YearEdge bool
}

// Months splits r into calendar month segments. A trailing month cut short
// by r.End keeps its span but carries no label.
func Months(r schedule.Range, s Scale) []Segment {
	var segs []Segment
	for m := schedule.MonthStart(r.Start); m.Before(r.End); m = m.AddDate(0, 1, 0) {
		next := m.AddDate(0, 1, 0)
		seg := Segment{
			Kind:  SegmentMonth,
			Label: m.Format("Jan"),
			Start: latest(m, r.Start),
			End:   earliest(next, r.End),
		}
		if next.After(r.End) {
			seg.Label = ""
		}
		seg.X0, seg.X1 = s.X(seg.Start), s.X(seg.End)
		segs = append(segs, seg)
	}
	return segs
}

// MonthBoundaries returns one gridline per month start from r.Start through
// r.End inclusive.
func MonthBoundaries(r schedule.Range, s Scale) []Boundary {
	var bs []Boundary
	m := schedule.MonthStart(r.Start)
	if m.Before(r.Start) {
		m = m.AddDate(0, 1, 0)
	}
	for ; !m.After(r.End); m = m.AddDate(0, 1, 0) {
		bs = append(bs, Boundary{Date: m, X: s.X(m), YearEdge: m.Month() == time.January})
	}
	return bs
}

// Years returns one segment per calendar year touched by r, clamped to the
// range so partial years show only their visible part.
func Years(r schedule.Range, s Scale) []Segment {
	if !r.End.After(r.Start) {
		return nil
	}
	last := r.End.Add(-time.Nanosecond).Year()
	var segs []Segment
	for y := r.Start.Year(); y <= last; y++ {
		seg := Segment{
			Kind:  SegmentYear,
			Label: fmt.Sprintf("%04d", y),
			Start: latest(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), r.Start),
			End:   earliest(time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC), r.End),
		}
		seg.X0, seg.X1 = s.X(seg.Start), s.X(seg.End)
		segs = append(segs, seg)
	}
	return segs
}

// FitFontSize shrinks f from base by step until text is narrower than
// width or the floor is reached, then drops one more step for padding.
// The result never goes below floor; text that does not fit at the floor
// is drawn at the floor and may overflow.
func FitFontSize(text string, width float64, f measure.Font, base, floor, step float64, m measure.Measurer) float64 {
	size := base
	for size > floor && m.Width(text, f.WithSize(size)) >= width {
		size -= step
	}
	size -= step
	if size < floor {
		size = floor
	}
	return size
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
