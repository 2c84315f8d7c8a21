// Package gantt lays out a Gantt chart: it turns schedule rows into a
// month-aligned time axis, a pixels-per-day scale and an ordered list of
// draw commands for a fixed-size canvas.
//
// Layout is a single synchronous pass with no state kept between calls.
// Given the same table, configuration and clock it returns the same
// commands in the same order.
package gantt

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"gantt2svg/internal/config"
	"gantt2svg/internal/measure"
	"gantt2svg/internal/schedule"
)

// Engine holds the collaborators of a layout. The zero Now and Logger
// default to the wall clock and a discarding logger.
type Engine struct {
	Config   config.Config
	Measurer measure.Measurer
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewEngine returns an Engine using the wall clock and no logging.
func NewEngine(cfg config.Config, m measure.Measurer) *Engine {
	return &Engine{Config: cfg, Measurer: m}
}

// Row is the computed geometry of one source row. X0 and X1 are the bar
// ends or the diamond's left and right vertices; they and Label are only
// meaningful when Drawn is set.
type Row struct {
	Record schedule.Record
	Y      float64
	Drawn  bool
	X0, X1 float64
	Label  Placement
}

// Chart is the result of a layout.
type Chart struct {
	Width      int
	Height     int
	Background string

	Range       schedule.Range
	Scale       Scale
	Rows        []Row
	Months      []Segment
	Years       []Segment
	Boundaries  []Boundary
	GanttBottom float64
	Today       time.Time
	TodayShown  bool

	// Commands is the ordered draw list: axis first, then the today
	// marker, then one group per row.
	Commands []Command

	// Warnings lists recovered per-record problems such as unreadable dates.
	Warnings []error
}

// Layout normalizes the table and produces the chart. Structural problems
// (missing columns, no rows, no usable scale) fail the whole layout;
// unreadable dates only skip the affected rows.
func (e *Engine) Layout(header []string, body [][]schedule.Cell) (*Chart, error) {
	cfg := e.Config
	log := e.logger()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	records, warnings, err := schedule.Normalize(header, body, cfg.ScheduleColumns())
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("skipping unreadable date", "error", w)
	}

	r, err := schedule.ComputeRange(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateScale, err)
	}
	ppd, err := SolveScale(records, r.Start, cfg, e.Measurer)
	if err != nil {
		return nil, err
	}
	log.Debug("scale solved", "range_start", r.Start.Format("2006-01-02"),
		"range_end", r.End.Format("2006-01-02"), "pixels_per_day", ppd)

	c := &Chart{
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		Background:  cfg.Canvas.Background,
		Range:       r,
		Scale:       Scale{PixelsPerDay: ppd, Origin: r.Start, Buffer: cfg.Layout.Buffer},
		GanttBottom: float64(len(records)) * e.rowPitch(),
		Warnings:    warnings,
	}
	c.Months = Months(r, c.Scale)
	c.Years = Years(r, c.Scale)
	c.Boundaries = MonthBoundaries(r, c.Scale)

	e.drawAxis(c)
	e.drawToday(c)
	for _, rec := range records {
		c.Rows = append(c.Rows, e.drawRow(c, rec))
	}

	if bottom := c.GanttBottom + cfg.Layout.MonthBand + cfg.Layout.YearBand; bottom > float64(cfg.Canvas.Height) {
		log.Warn("chart taller than canvas", "rows", len(records),
			"needed", bottom, "canvas_height", cfg.Canvas.Height)
	}
	log.Debug("layout complete", "rows", len(c.Rows), "commands", len(c.Commands))
	return c, nil
}

func (e *Engine) rowPitch() float64 {
	return e.Config.Layout.BarHeight + e.Config.Layout.RowGap
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *Engine) drawAxis(c *Chart) {
	cfg := e.Config
	monthTop := c.GanttBottom
	yearTop := monthTop + cfg.Layout.MonthBand
	axisBottom := yearTop + cfg.Layout.YearBand

	for _, b := range c.Boundaries {
		ln := Line{X1: b.X, Y1: 0, X2: b.X, Y2: yearTop, Stroke: cfg.Colors.Grid, Width: 1}
		if b.YearEdge {
			ln.Stroke, ln.Width, ln.Y2 = cfg.Colors.YearLine, 2, axisBottom
		}
		c.Commands = append(c.Commands, ln)
	}

	axisFont := measure.Font{Family: cfg.Font.Family}
	e.drawBand(c, c.Months, monthTop, cfg.Layout.MonthBand, axisFont)
	axisFont.Bold = true
	e.drawBand(c, c.Years, yearTop, cfg.Layout.YearBand, axisFont)
}

func (e *Engine) drawBand(c *Chart, segs []Segment, top, height float64, f measure.Font) {
	cfg := e.Config
	for _, s := range segs {
		c.Commands = append(c.Commands, Rect{
			X: s.X0, Y: top, W: s.Width(), H: height,
			Stroke: cfg.Colors.Grid, StrokeWidth: 1,
		})
		if s.Label == "" {
			continue
		}
		size := FitFontSize(s.Label, s.Width(), f, cfg.Font.AxisBase, cfg.Font.AxisMin, cfg.Font.AxisStep, e.Measurer)
		c.Commands = append(c.Commands, Text{
			X: (s.X0 + s.X1) / 2, Y: top + height/2,
			Content: s.Label,
			Font:    f.WithSize(size),
			Fill:    cfg.Colors.AxisText,
			Align:   AlignMiddle,
		})
	}
}

// drawToday marks the current UTC calendar day when it falls strictly
// inside the range.
func (e *Engine) drawToday(c *Chart) {
	c.Today = schedule.DayStart(e.now())
	if !c.Range.Contains(c.Today) {
		return
	}
	c.TodayShown = true
	x := c.Scale.X(c.Today)
	c.Commands = append(c.Commands, Line{
		X1: x, Y1: 0, X2: x, Y2: c.GanttBottom,
		Stroke: e.Config.Colors.Today, Width: 2,
	})
}

func (e *Engine) drawRow(c *Chart, rec schedule.Record) Row {
	cfg := e.Config
	row := Row{Record: rec, Y: float64(rec.Row) * e.rowPitch()}
	if !rec.Drawable() {
		if rec.Kind != schedule.KindOther {
			e.logger().Debug("row not drawn", "row", rec.Row+1, "kind", rec.Kind, "title", rec.Title)
		}
		return row
	}
	row.Drawn = true
	f := rowFont(cfg)
	h := cfg.Layout.BarHeight

	textFill := cfg.Colors.Text
	switch rec.Kind {
	case schedule.KindActivity:
		row.X0, row.X1 = c.Scale.X(rec.Start), c.Scale.X(rec.End)
		if row.X1 < row.X0 {
			row.X1 = row.X0
		}
		c.Commands = append(c.Commands, Rect{
			X: row.X0, Y: row.Y, W: row.X1 - row.X0, H: h,
			Fill: cfg.Colors.Activity, FillOpacity: 1,
		})
		row.Label = PlaceLabel(Anchor{Left: row.X0, Right: row.X1, RowY: row.Y, RowHeight: h, Interior: true},
			rec.Title, f, cfg, e.Measurer)
		if row.Label.Tier == TierInside {
			textFill = cfg.Colors.InsideText
		}

	case schedule.KindMilestone:
		cx, size := c.Scale.X(rec.Start), cfg.Layout.DiamondSize
		row.X0, row.X1 = cx-size, cx+size
		c.Commands = append(c.Commands, Diamond{
			CX: cx, CY: row.Y + h/2, Size: size, Fill: cfg.Colors.Milestone,
		})
		row.Label = PlaceLabel(Anchor{Left: row.X0, Right: row.X1, RowY: row.Y, RowHeight: h},
			rec.Title, f, cfg, e.Measurer)
		if rec.Title != "" {
			b := e.Measurer.Bounds(rec.Title, f)
			c.Commands = append(c.Commands, Rect{
				X: row.Label.X, Y: row.Label.Y - b.Height()/2, W: b.Width, H: b.Height(),
				Fill: cfg.Colors.LabelBackground, FillOpacity: cfg.Colors.LabelBackgroundOpacity,
			})
		}
	}

	if rec.Title != "" {
		c.Commands = append(c.Commands, Text{
			X: row.Label.X, Y: row.Label.Y,
			Content: rec.Title,
			Font:    f,
			Fill:    textFill,
			Align:   row.Label.Align,
		})
	}
	return row
}
