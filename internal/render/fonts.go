package render

import (
	"fmt"
	"log"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/example/scribble/internal/shape"
)

var (
	regularFont *opentype.Font
	monoFont    *opentype.Font
	boldFont    *opentype.Font
)

type faceKey struct {
	family string
	size   float64
}

// DefaultFaceLimit bounds a Faces cache created with a non-positive limit.
const DefaultFaceLimit = 32

// Faces caches font faces by family and size. Sizes are rounded to the
// nearest half pixel. A Faces value and the faces it returns belong to a
// single goroutine.
type Faces struct {
	limit int
	faces map[faceKey]font.Face
	order []faceKey
}

// NewFaces returns an empty cache holding at most limit faces.
func NewFaces(limit int) *Faces {
	if limit <= 0 {
		limit = DefaultFaceLimit
	}
	return &Faces{limit: limit, faces: make(map[faceKey]font.Face)}
}

// Len reports how many faces are cached.
func (c *Faces) Len() int { return len(c.faces) }

func roundSize(size float64) float64 {
	if size <= 0 {
		size = shape.DefaultFont.Size
	}
	return math.Max(0.5, math.Round(size*2)/2)
}

// Face returns the face for f, evicting the oldest entry when full.
func (c *Faces) Face(f shape.Font) (font.Face, error) {
	key := faceKey{strings.ToLower(f.Family), roundSize(f.Size)}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(fontFor(f.Family), &opentype.FaceOptions{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", f, err)
	}
	for len(c.order) >= c.limit {
		old := c.order[0]
		c.order = c.order[1:]
		c.faces[old].Close()
		delete(c.faces, old)
	}
	c.faces[key] = face
	c.order = append(c.order, key)
	return face, nil
}

// Measure returns the width, height and baseline offset of text set in f.
func (c *Faces) Measure(text string, f shape.Font) (w, h, baseline float64, err error) {
	face, err := c.Face(f)
	if err != nil {
		return 0, 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	return float64(d.MeasureString(text).Ceil()), ascent + float64(m.Descent.Ceil()), ascent, nil
}

func init() {
	var err error
	if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
		log.Fatalf("parse font: %v", err)
	}
	if monoFont, err = opentype.Parse(gomono.TTF); err != nil {
		log.Fatalf("parse font: %v", err)
	}
	if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
		log.Fatalf("parse font: %v", err)
	}
}

func fontFor(family string) *opentype.Font {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"):
		return monoFont
	case strings.Contains(f, "bold"):
		return boldFont
	}
	return regularFont
}
