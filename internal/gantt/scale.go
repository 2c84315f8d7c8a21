package gantt

import (
	"errors"
	"math"
	"time"

	"gantt2svg/internal/config"
	"gantt2svg/internal/measure"
	"gantt2svg/internal/schedule"
)

// ErrDegenerateScale is returned when no record can constrain the scale,
// for example when every date is invalid or every title is wider than the
// canvas.
var ErrDegenerateScale = errors.New("degenerate scale: no record yields a positive pixels-per-day")

// Scale maps instants onto the horizontal axis.
type Scale struct {
	PixelsPerDay float64
	Origin       time.Time
	Buffer       float64
}

// X returns the horizontal pixel position of t.
func (s Scale) X(t time.Time) float64 {
	return schedule.DaysBetween(s.Origin, t)*s.PixelsPerDay + s.Buffer
}

// Span returns the pixel width between a and b.
func (s Scale) Span(a, b time.Time) float64 {
	return schedule.DaysBetween(a, b) * s.PixelsPerDay
}

// RecordScale is the largest pixels-per-day at which r's trailing label
// still ends inside the canvas. The second result is false when the record
// takes no part in the reduction: it is not drawable, it reaches no later
// than rangeStart, or its label cannot fit at any positive scale.
func RecordScale(r schedule.Record, rangeStart time.Time, cfg config.Config, m measure.Measurer) (float64, bool) {
	if !r.Drawable() {
		return 0, false
	}
	available := float64(cfg.Canvas.Width) - 2*cfg.Layout.Buffer - cfg.Layout.LabelGap - m.Width(r.Title, rowFont(cfg))
	if r.Kind == schedule.KindMilestone {
		// the label starts past the diamond's right vertex
		available -= cfg.Layout.DiamondSize
	}
	days := schedule.DaysBetween(rangeStart, r.Reach())
	if days <= 0 || available <= 0 {
		return 0, false
	}
	return available / days, true
}

// SolveScale returns the minimum RecordScale over all records, so the most
// binding record's label just fits and every other label fits with room to
// spare.
func SolveScale(records []schedule.Record, rangeStart time.Time, cfg config.Config, m measure.Measurer) (float64, error) {
	best := math.Inf(1)
	for _, r := range records {
		if v, ok := RecordScale(r, rangeStart, cfg, m); ok && v < best {
			best = v
		}
	}
	if math.IsInf(best, 1) {
		return 0, ErrDegenerateScale
	}
	return best, nil
}

func rowFont(cfg config.Config) measure.Font {
	return measure.Font{Family: cfg.Font.Family, Size: cfg.Font.Size}
}
