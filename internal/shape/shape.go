// Package shape holds the drawing primitives that live on the canvas.
package shape

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Point is a surface-local coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Box is a normalized bounding rectangle with X1<=X2 and Y1<=Y2.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// BoxOf returns the min/max box over pts. An empty slice yields a zero Box.
func BoxOf(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		b.X1 = math.Min(b.X1, p.X)
		b.Y1 = math.Min(b.Y1, p.Y)
		b.X2 = math.Max(b.X2, p.X)
		b.Y2 = math.Max(b.Y2, p.Y)
	}
	return b
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Translate returns b moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{b.X1 + dx, b.Y1 + dy, b.X2 + dx, b.Y2 + dy}
}

// Corners returns the corners in TL, TR, BL, BR order.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.X1, b.Y1},
		{b.X2, b.Y1},
		{b.X1, b.Y2},
		{b.X2, b.Y2},
	}
}

func (b Box) String() string {
	return fmt.Sprintf("{x1:%g y1:%g x2:%g y2:%g}", b.X1, b.Y1, b.X2, b.Y2)
}

// LineCoords is the selection form of a Line: two endpoints rather than a box.
type LineCoords struct {
	StartX, StartY, EndX, EndY float64
}

func (c LineCoords) Start() Point { return Point{c.StartX, c.StartY} }
func (c LineCoords) End() Point   { return Point{c.EndX, c.EndY} }

// Composite controls how a stroke combines with existing pixels.
type Composite int

const (
	PaintOver Composite = iota
	Erase
)

func (c Composite) String() string {
	switch c {
	case PaintOver:
		return "paint-over"
	case Erase:
		return "erase"
	}
	return fmt.Sprintf("Composite(%d)", int(c))
}

// Kind names a Shape variant.
type Kind int

const (
	KindStroke Kind = iota
	KindLine
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is one of *Stroke, *Line or *Text.
type Shape interface {
	ShapeID() uuid.UUID
	Kind() Kind
	sealed()
}

// Stroke is a freehand path of sampled points.
type Stroke struct {
	ID        uuid.UUID
	Points    []Point
	Box       Box
	Width     float64
	Color     color.RGBA
	Composite Composite
}

// NewStroke starts a stroke at p.
func NewStroke(p Point, width float64, col color.RGBA, mode Composite) *Stroke {
	return &Stroke{
		ID:        uuid.New(),
		Points:    []Point{p},
		Width:     width,
		Color:     col,
		Composite: mode,
	}
}

// Add appends a sample.
func (s *Stroke) Add(p Point) {
	s.Points = append(s.Points, p)
}

// Commit derives the bounding box from the recorded samples.
func (s *Stroke) Commit() {
	s.Box = BoxOf(s.Points...)
}

func (s *Stroke) ShapeID() uuid.UUID { return s.ID }
func (s *Stroke) Kind() Kind         { return KindStroke }
func (*Stroke) sealed()              {}

// Line is a straight segment.
type Line struct {
	ID    uuid.UUID
	Start Point
	End   Point
	Width float64
	Color color.RGBA
}

// NewLine starts a zero-length line at p.
func NewLine(p Point, width float64, col color.RGBA) *Line {
	return &Line{ID: uuid.New(), Start: p, End: p, Width: width, Color: col}
}

// Coords returns the endpoint selection form.
func (l *Line) Coords() LineCoords {
	return LineCoords{l.Start.X, l.Start.Y, l.End.X, l.End.Y}
}

func (l *Line) ShapeID() uuid.UUID { return l.ID }
func (l *Line) Kind() Kind         { return KindLine }
func (*Line) sealed()              {}

// Text is a single line of text anchored at its top-left corner.
type Text struct {
	ID      uuid.UUID
	Content string
	Font    Font
	Origin  Point
	Color   color.RGBA
	Box     Box
}

// NewText creates an uncommitted text block at p.
func NewText(p Point, font Font, col color.RGBA) *Text {
	return &Text{ID: uuid.New(), Origin: p, Font: font, Color: col}
}

// Commit sets the box from the measured text extent.
func (t *Text) Commit(w, h float64) {
	t.Box = Box{t.Origin.X, t.Origin.Y, t.Origin.X + w, t.Origin.Y + h}
}

func (t *Text) ShapeID() uuid.UUID { return t.ID }
func (t *Text) Kind() Kind         { return KindText }
func (*Text) sealed()              {}

// Translate moves s in place by (dx, dy).
func Translate(s Shape, dx, dy float64) {
	switch v := s.(type) {
	case *Stroke:
		for i := range v.Points {
			v.Points[i] = v.Points[i].Add(dx, dy)
		}
		v.Box = v.Box.Translate(dx, dy)
	case *Line:
		v.Start = v.Start.Add(dx, dy)
		v.End = v.End.Add(dx, dy)
	case *Text:
		v.Origin = v.Origin.Add(dx, dy)
		v.Box = v.Box.Translate(dx, dy)
	default:
		panic(fmt.Sprintf("shape: unknown variant %T", s))
	}
}

// Clone returns a deep copy of s with the same ID.
func Clone(s Shape) Shape {
	switch v := s.(type) {
	case *Stroke:
		c := *v
		c.Points = append([]Point(nil), v.Points...)
		return &c
	case *Line:
		c := *v
		return &c
	case *Text:
		c := *v
		return &c
	default:
		panic(fmt.Sprintf("shape: unknown variant %T", s))
	}
}

// Assign copies the geometry of src into dst. Both must be the same variant.
func Assign(dst, src Shape) {
	switch d := dst.(type) {
	case *Stroke:
		s := src.(*Stroke)
		d.Points = append(d.Points[:0], s.Points...)
		d.Box = s.Box
	case *Line:
		s := src.(*Line)
		d.Start, d.End = s.Start, s.End
	case *Text:
		s := src.(*Text)
		d.Origin, d.Font, d.Box = s.Origin, s.Font, s.Box
	default:
		panic(fmt.Sprintf("shape: unknown variant %T", dst))
	}
}
