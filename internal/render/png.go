package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"gantt2svg/internal/gantt"
	"gantt2svg/internal/measure"
)

// PNG rasterizes the chart with the embedded Go fonts. Text positions come
// from the chart, so the chart should have been laid out with the same
// Faces for labels to line up with their shapes.
func PNG(w io.Writer, c *gantt.Chart, faces *measure.Faces) error {
	img, err := Rasterize(c, faces)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Rasterize paints the chart's commands onto a new RGBA image.
func Rasterize(c *gantt.Chart, faces *measure.Faces) (*image.RGBA, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	bg, err := parseColor(c.Background, 1)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	p := &painter{img: img, faces: faces, r: vector.NewRasterizer(c.Width, c.Height)}
	for i, cmd := range c.Commands {
		if err := p.paint(cmd); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
	}
	return img, nil
}

type point struct{ x, y float64 }

// painter draws commands onto img. One rasterizer is reset and reused for
// every shape.
type painter struct {
	img   *image.RGBA
	faces *measure.Faces
	r     *vector.Rasterizer
}

func (p *painter) paint(cmd gantt.Command) error {
	switch c := cmd.(type) {
	case gantt.Rect:
		if c.Fill != "" {
			col, err := parseColor(c.Fill, c.FillOpacity)
			if err != nil {
				return err
			}
			p.fillPolygon(col, rectPoints(c.X, c.Y, c.W, c.H)...)
		}
		if c.Stroke != "" {
			col, err := parseColor(c.Stroke, 1)
			if err != nil {
				return err
			}
			sw, half := c.StrokeWidth, c.StrokeWidth/2
			p.fillPolygon(col, rectPoints(c.X-half, c.Y-half, c.W+sw, sw)...)     // top
			p.fillPolygon(col, rectPoints(c.X-half, c.Y+c.H-half, c.W+sw, sw)...) // bottom
			p.fillPolygon(col, rectPoints(c.X-half, c.Y+half, sw, c.H-sw)...)     // left
			p.fillPolygon(col, rectPoints(c.X+c.W-half, c.Y+half, sw, c.H-sw)...) // right
		}

	case gantt.Line:
		col, err := parseColor(c.Stroke, 1)
		if err != nil {
			return err
		}
		p.strokeLine(col, point{c.X1, c.Y1}, point{c.X2, c.Y2}, c.Width)

	case gantt.Diamond:
		col, err := parseColor(c.Fill, 1)
		if err != nil {
			return err
		}
		p.fillPolygon(col,
			point{c.CX, c.CY - c.Size},
			point{c.CX + c.Size, c.CY},
			point{c.CX, c.CY + c.Size},
			point{c.CX - c.Size, c.CY})

	case gantt.Text:
		col, err := parseColor(c.Fill, 1)
		if err != nil {
			return err
		}
		p.drawText(col, c)
	}
	return nil
}

func rectPoints(x, y, w, h float64) []point {
	return []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func (p *painter) strokeLine(col color.Color, a, b point, width float64) {
	dx, dy := b.x-a.x, b.y-a.y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// unit normal scaled to half the stroke width
	nx, ny := -dy/length*width/2, dx/length*width/2
	p.fillPolygon(col,
		point{a.x + nx, a.y + ny},
		point{b.x + nx, b.y + ny},
		point{b.x - nx, b.y - ny},
		point{a.x - nx, a.y - ny})
}

// fillPolygon fills a closed path, compositing over what is already drawn.
// Vertices are clamped to the image.
func (p *painter) fillPolygon(col color.Color, pts ...point) {
	b := p.img.Bounds()
	w, h := b.Dx(), b.Dy()
	clamp := func(p point) (float32, float32) {
		return float32(math.Max(0, math.Min(float64(w), p.x))),
			float32(math.Max(0, math.Min(float64(h), p.y)))
	}

	r := p.r
	r.Reset(w, h)
	r.DrawOp = draw.Over
	r.MoveTo(clamp(pts[0]))
	for _, pt := range pts[1:] {
		r.LineTo(clamp(pt))
	}
	r.ClosePath()
	r.Draw(p.img, b, image.NewUniform(col), image.Point{})
}

func (p *painter) drawText(col color.Color, t gantt.Text) {
	faces := p.faces
	face := faces.Face(t.Font)
	if face == nil || t.Content == "" {
		return
	}
	ascent, descent := faces.Metrics(t.Font)
	x := t.X
	if t.Align == gantt.AlignMiddle {
		x -= faces.Width(t.Content, t.Font) / 2
	}
	baseline := t.Y + (ascent-descent)/2

	faces.Lock()
	defer faces.Unlock()
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x * 64)),
			Y: fixed.Int26_6(math.Round(baseline * 64)),
		},
	}
	d.DrawString(t.Content)
}

// parseColor reads "#rgb" or "#rrggbb" and applies alpha in [0, 1].
func parseColor(s string, alpha float64) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(math.Round(alpha * 255)),
	}, nil
}
