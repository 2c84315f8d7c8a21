package gantt

import (
	"gantt2svg/internal/config"
	"gantt2svg/internal/measure"
)

// Tier records which placement rule positioned a label.
type Tier int

const (
	TierRight Tier = iota + 1
	TierLeft
	TierInside
	TierClamped
)

func (t Tier) String() string {
	switch t {
	case TierRight:
		return "right"
	case TierLeft:
		return "left"
	case TierInside:
		return "inside"
	case TierClamped:
		return "clamped"
	default:
		return "none"
	}
}

// fitTolerance absorbs float error when the scale was solved so that the
// binding record's label ends exactly on the edge.
const fitTolerance = 1e-6

// Anchor is the horizontal extent of a bar or diamond inside its row.
// Interior allows a label inside the shape, which only bars support.
type Anchor struct {
	Left, Right     float64
	RowY, RowHeight float64
	Interior        bool
}

// Placement is where a label's left edge and vertical middle go.
type Placement struct {
	X, Y  float64
	Width float64
	Align Align
	Tier  Tier
}

type placeContext struct {
	anchor      Anchor
	width       float64
	canvasWidth float64
	buffer      float64
	gap         float64
	inset       float64
}

// candidate proposes a left edge and reports whether it fits.
type candidate func(c placeContext) (float64, bool)

var candidates = []struct {
	tier Tier
	pos  candidate
}{
	{TierRight, rightOf},
	{TierLeft, leftOf},
	{TierInside, inside},
}

func rightOf(c placeContext) (float64, bool) {
	x := c.anchor.Right + c.gap
	return x, x+c.width <= c.canvasWidth-c.buffer+fitTolerance
}

func leftOf(c placeContext) (float64, bool) {
	x := c.anchor.Left - c.gap - c.width
	return x, x >= 0
}

func inside(c placeContext) (float64, bool) {
	if !c.anchor.Interior {
		return 0, false
	}
	return c.anchor.Left + c.inset, c.anchor.Right-c.anchor.Left >= c.width+2*c.inset
}

// PlaceLabel positions text next to a. Candidates are tried in order and
// the first that fits wins: right of the shape, left of it, inside a bar.
// Otherwise the label is pinned to end at the right buffer, the same bound
// the right-hand candidate uses, and may overlap the shape. X is never
// negative.
func PlaceLabel(a Anchor, text string, f measure.Font, cfg config.Config, m measure.Measurer) Placement {
	c := placeContext{
		anchor:      a,
		width:       m.Width(text, f),
		canvasWidth: float64(cfg.Canvas.Width),
		buffer:      cfg.Layout.Buffer,
		gap:         cfg.Layout.LabelGap,
		inset:       cfg.Layout.LabelInset,
	}
	p := Placement{
		Y:     a.RowY + a.RowHeight/2,
		Width: c.width,
		Align: AlignStart,
	}
	for _, cand := range candidates {
		if x, ok := cand.pos(c); ok {
			p.X, p.Tier = x, cand.tier
			return p
		}
	}
	p.X = c.canvasWidth - c.buffer - c.width
	if p.X < 0 {
		p.X = 0
	}
	p.Tier = TierClamped
	return p
}
