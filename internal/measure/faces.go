package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Faces measures text with the embedded Go fonts. The requested family is
// ignored; only size and weight select a face. Faces are created lazily and
// cached, and a Faces value is safe for concurrent use.
type Faces struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	cache map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewFaces parses the embedded fonts.
func NewFaces() (*Faces, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing Go Regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing Go Bold: %w", err)
	}
	return &Faces{
		regular: regular,
		bold:    bold,
		cache:   make(map[faceKey]font.Face),
	}, nil
}

// Face returns the font.Face for f, creating it on first use. Opentype
// faces are not safe for concurrent use; callers drawing with the returned
// face must hold Lock.
func (fc *Faces) Face(f Font) font.Face {
	if f.Size <= 0 {
		return nil
	}
	key := faceKey{size: f.Size, bold: f.Bold}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if face, ok := fc.cache[key]; ok {
		return face
	}

	src := fc.regular
	if f.Bold {
		src = fc.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	fc.cache[key] = face
	return face
}

func (fc *Faces) Width(text string, f Font) float64 {
	face := fc.Face(f)
	if face == nil {
		return 0
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return toFloat(font.MeasureString(face, text))
}

func (fc *Faces) Bounds(text string, f Font) Bounds {
	face := fc.Face(f)
	if face == nil {
		return Bounds{}
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	b, advance := font.BoundString(face, text)
	return Bounds{
		Width:   toFloat(advance),
		Ascent:  toFloat(-b.Min.Y),
		Descent: toFloat(b.Max.Y),
	}
}

// Metrics returns the line ascent and descent of f's face, used to place a
// baseline so text is vertically centred on a point.
func (fc *Faces) Metrics(f Font) (ascent, descent float64) {
	face := fc.Face(f)
	if face == nil {
		return 0, 0
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	m := face.Metrics()
	return toFloat(m.Ascent), toFloat(m.Descent)
}

// Lock and Unlock serialize drawing with a face obtained from Face.
func (fc *Faces) Lock()   { fc.mu.Lock() }
func (fc *Faces) Unlock() { fc.mu.Unlock() }

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
