// Package measure provides the text metrics the layout engine depends on.
// Every Measurer is synchronous and cannot fail, so a layout never stops
// half way through on a measurement.
package measure

import "github.com/mattn/go-runewidth"

// Font describes how a piece of text is drawn.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// WithSize returns a copy of f at another size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// Bounds is the measured box of a single line of text.
type Bounds struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is the full ascent plus descent.
func (b Bounds) Height() float64 { return b.Ascent + b.Descent }

// Measurer reports rendered text sizes in pixels.
type Measurer interface {
	Width(text string, f Font) float64
	Bounds(text string, f Font) Bounds
}

// Estimator approximates text metrics from character counts without any
// font data. Wide East Asian runes count as two columns.
type Estimator struct {
	// CharWidth is the average advance of one column as a fraction of the
	// font size.
	CharWidth float64
}

// NewEstimator returns an Estimator with an average character width of
// 0.6 * font size.
func NewEstimator() Estimator {
	return Estimator{CharWidth: 0.6}
}

func (e Estimator) Width(text string, f Font) float64 {
	w := float64(runewidth.StringWidth(text)) * f.Size * e.CharWidth
	if f.Bold {
		w *= 1.1
	}
	return w
}

func (e Estimator) Bounds(text string, f Font) Bounds {
	return Bounds{
		Width:   e.Width(text, f),
		Ascent:  f.Size * 0.8,
		Descent: f.Size * 0.2,
	}
}
