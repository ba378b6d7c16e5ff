// Package geom implements hit-testing and resize math for shapes.
package geom

import (
	"math"

	"github.com/example/scribble/internal/shape"
)

// Offset is the handle tolerance in device pixels.
const Offset = 10

// Handle names a grab point on a selected shape.
type Handle int

const (
	None Handle = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	Middle
	Start
	End
)

var handleNames = [...]string{
	None:        "none",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
	Middle:      "middle",
	Start:       "start",
	End:         "end",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// IsCorner reports whether h is one of the four box corners.
func (h Handle) IsCorner() bool {
	return h >= TopLeft && h <= BottomRight
}

// IsEndpoint reports whether h is a line endpoint.
func (h Handle) IsEndpoint() bool {
	return h == Start || h == End
}

// IsResize reports whether dragging h resizes rather than moves.
func (h Handle) IsResize() bool {
	return h.IsCorner() || h.IsEndpoint()
}

func near(p, q shape.Point, offset float64) bool {
	return math.Abs(p.X-q.X) <= offset && math.Abs(p.Y-q.Y) <= offset
}

// BoxHandleAt classifies p against a stroke or text box. Corners win over
// the interior.
func BoxHandleAt(p shape.Point, b shape.Box, offset float64) Handle {
	for i, c := range b.Corners() {
		if near(p, c, offset) {
			return TopLeft + Handle(i)
		}
	}
	if b.Contains(p) {
		return Middle
	}
	return None
}

// LineHandleAt classifies p against a line's endpoints. contains answers
// whether p lies on the drawn segment.
func LineHandleAt(p shape.Point, c shape.LineCoords, offset float64, contains func(shape.Point) bool) Handle {
	switch {
	case near(p, c.Start(), offset):
		return Start
	case near(p, c.End(), offset):
		return End
	case contains != nil && contains(p):
		return Middle
	}
	return None
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b shape.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// PointInPolyline reports whether p is covered by the path pts stroked
// with the given width and round caps.
func PointInPolyline(p shape.Point, pts []shape.Point, width float64) bool {
	half := width / 2
	switch len(pts) {
	case 0:
		return false
	case 1:
		return math.Hypot(p.X-pts[0].X, p.Y-pts[0].Y) <= half
	}
	for i := 1; i < len(pts); i++ {
		if DistanceToSegment(p, pts[i-1], pts[i]) <= half {
			return true
		}
	}
	return false
}
