package gantt

import "gantt2svg/internal/measure"

// Command is one drawable primitive. The concrete types are Rect, Line,
// Diamond and Text; renderers type-switch over them in order.
type Command interface {
	command()
}

// Align is the horizontal anchor of a Text command.
type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
)

// Rect is an axis-aligned rectangle. An empty Fill draws only the outline,
// an empty Stroke only the fill.
type Rect struct {
	X, Y, W, H  float64
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
}

// Diamond is a square rotated 45 degrees around (CX, CY). Size is the
// distance from the centre to each vertex.
type Diamond struct {
	CX, CY float64
	Size   float64
	Fill   string
	Stroke string
}

// Text is a single line of text vertically centred on Y.
type Text struct {
	X, Y    float64
	Content string
	Font    measure.Font
	Fill    string
	Align   Align
}

func (Rect) command()    {}
func (Line) command()    {}
func (Diamond) command() {}
func (Text) command()    {}
