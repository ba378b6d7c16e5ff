package render

import (
	"image"
	"image/color"
	"log"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/example/scribble/internal/geom"
	"github.com/example/scribble/internal/shape"
)

// RasterSurface is a Surface backed by an RGBA image. It is not safe for
// concurrent use.
type RasterSurface struct {
	dc    *gg.Context
	im    *image.RGBA
	faces *Faces
}

// NewRasterSurface allocates a transparent w×h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	im := image.NewRGBA(image.Rect(0, 0, w, h))
	return &RasterSurface{dc: gg.NewContextForRGBA(im), im: im, faces: NewFaces(0)}
}

// Image returns the backing pixels. The image is reused across frames.
func (s *RasterSurface) Image() *image.RGBA { return s.im }

func (s *RasterSurface) Bounds() image.Rectangle { return s.im.Bounds() }

func (s *RasterSurface) Clear() {
	draw.Draw(s.im, s.im.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func applyPen(dc *gg.Context, pts []shape.Point, pen Pen) {
	dc.SetLineWidth(pen.Width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if pen.Closed {
		dc.ClosePath()
	}
}

func (s *RasterSurface) StrokePath(pts []shape.Point, pen Pen) {
	if len(pts) == 0 {
		return
	}
	if pen.Composite == shape.Erase {
		s.erase(pts, pen)
		return
	}
	s.dc.SetColor(pen.Color)
	applyPen(s.dc, pts, pen)
	s.dc.Stroke()
}

// erase clears every pixel the path would cover.
func (s *RasterSurface) erase(pts []shape.Point, pen Pen) {
	b := s.im.Bounds()
	mask := gg.NewContext(b.Dx(), b.Dy())
	mask.SetColor(color.White)
	applyPen(mask, pts, pen)
	mask.Stroke()
	draw.DrawMask(s.im, b, image.Transparent, image.Point{}, mask.AsMask(), image.Point{}, draw.Src)
}

func (s *RasterSurface) FillCircle(c shape.Point, r float64, col color.RGBA) {
	s.dc.SetColor(col)
	s.dc.DrawCircle(c.X, c.Y, r)
	s.dc.Fill()
}

func (s *RasterSurface) FillText(text string, f shape.Font, origin shape.Point, col color.RGBA) {
	if text == "" {
		return
	}
	_, _, baseline, err := s.faces.Measure(text, f)
	if err != nil {
		log.Printf("fill text: %v", err)
		return
	}
	face, _ := s.faces.Face(f)
	s.dc.SetFontFace(face)
	s.dc.SetColor(col)
	s.dc.DrawString(text, origin.X, origin.Y+baseline)
}

func (s *RasterSurface) MeasureText(text string, f shape.Font) (float64, float64) {
	w, h, _, err := s.faces.Measure(text, f)
	if err != nil {
		log.Printf("measure text: %v", err)
		return 0, f.Size
	}
	return w, h
}

func (s *RasterSurface) IsPointInStroke(pts []shape.Point, width float64, p shape.Point) bool {
	return geom.PointInPolyline(p, pts, width)
}
