package geom

import (
	"fmt"
	"math"

	"github.com/example/scribble/internal/shape"
)

// MinScale keeps a resized shape from collapsing or flipping.
const MinScale = 0.05

// DragCorner returns the corner of b named by h.
func DragCorner(h Handle, b shape.Box) shape.Point {
	c := b.Corners()
	switch h {
	case TopLeft:
		return c[0]
	case TopRight:
		return c[1]
	case BottomLeft:
		return c[2]
	case BottomRight:
		return c[3]
	}
	panic(fmt.Sprintf("geom: %v is not a corner", h))
}

// ScaleOrigin returns the anchor that stays fixed while dragging h: the
// diagonally opposite corner.
func ScaleOrigin(h Handle, b shape.Box) shape.Point {
	c := b.Corners()
	switch h {
	case TopLeft:
		return c[3]
	case TopRight:
		return c[2]
	case BottomLeft:
		return c[1]
	case BottomRight:
		return c[0]
	}
	panic(fmt.Sprintf("geom: %v is not a corner", h))
}

// ScaleFactor projects the mouse onto the dominant axis of b and returns
// the ratio of origin→mouse over origin→corner along it.
func ScaleFactor(h Handle, b shape.Box, mouse shape.Point) float64 {
	origin := ScaleOrigin(h, b)
	corner := DragCorner(h, b)
	var k float64
	switch {
	case b.Width() >= b.Height() && b.Width() > 0:
		k = (mouse.X - origin.X) / (corner.X - origin.X)
	case b.Height() > 0:
		k = (mouse.Y - origin.Y) / (corner.Y - origin.Y)
	default:
		return 1
	}
	if k < MinScale {
		k = MinScale
	}
	return k
}

func scaleAbout(p, origin shape.Point, k float64) shape.Point {
	return shape.Point{
		X: origin.X + (p.X-origin.X)*k,
		Y: origin.Y + (p.Y-origin.Y)*k,
	}
}

func scaleBox(b shape.Box, origin shape.Point, k float64) shape.Box {
	return shape.BoxOf(scaleAbout(shape.Point{X: b.X1, Y: b.Y1}, origin, k), scaleAbout(shape.Point{X: b.X2, Y: b.Y2}, origin, k))
}

// ScaleStroke returns a copy of s with every sample scaled about the
// corner opposite h.
func ScaleStroke(s *shape.Stroke, h Handle, mouse shape.Point) *shape.Stroke {
	k := ScaleFactor(h, s.Box, mouse)
	origin := ScaleOrigin(h, s.Box)
	out := shape.Clone(s).(*shape.Stroke)
	for i, p := range out.Points {
		out.Points[i] = scaleAbout(p, origin, k)
	}
	out.Box = scaleBox(s.Box, origin, k)
	return out
}

// ScaleText returns a copy of t with its font size and position scaled
// about the corner opposite h. The factor stops where the font reaches
// shape.MinFontSize so the box keeps covering the glyphs.
func ScaleText(t *shape.Text, h Handle, mouse shape.Point) *shape.Text {
	k := ScaleFactor(h, t.Box, mouse)
	if t.Font.Size > 0 && t.Font.Size*k < shape.MinFontSize {
		k = math.Min(1, shape.MinFontSize/t.Font.Size)
	}
	origin := ScaleOrigin(h, t.Box)
	out := shape.Clone(t).(*shape.Text)
	out.Font = t.Font.Scale(k)
	out.Origin = scaleAbout(t.Origin, origin, k)
	out.Box = scaleBox(t.Box, origin, k)
	return out
}

// MoveLineEndpoint returns a copy of l with the endpoint h placed at mouse.
// The other endpoint stays fixed.
func MoveLineEndpoint(l *shape.Line, h Handle, mouse shape.Point) *shape.Line {
	out := shape.Clone(l).(*shape.Line)
	switch h {
	case Start:
		out.Start = mouse
	case End:
		out.End = mouse
	default:
		panic(fmt.Sprintf("geom: %v is not a line endpoint", h))
	}
	return out
}

// Scale computes the resized geometry of s for a drag of h to mouse. s is
// never modified.
func Scale(s shape.Shape, h Handle, mouse shape.Point) shape.Shape {
	switch v := s.(type) {
	case *shape.Stroke:
		return ScaleStroke(v, h, mouse)
	case *shape.Line:
		return MoveLineEndpoint(v, h, mouse)
	case *shape.Text:
		return ScaleText(v, h, mouse)
	default:
		panic(fmt.Sprintf("geom: unknown shape %T", s))
	}
}

// HandleAt dispatches to the box or endpoint classifier for s.
func HandleAt(s shape.Shape, p shape.Point, offset float64, contains func(pts []shape.Point, width float64, p shape.Point) bool) Handle {
	switch v := s.(type) {
	case *shape.Stroke:
		return BoxHandleAt(p, v.Box, offset)
	case *shape.Text:
		return BoxHandleAt(p, v.Box, offset)
	case *shape.Line:
		return LineHandleAt(p, v.Coords(), offset, func(q shape.Point) bool {
			return contains([]shape.Point{v.Start, v.End}, v.Width, q)
		})
	default:
		panic(fmt.Sprintf("geom: unknown shape %T", s))
	}
}
