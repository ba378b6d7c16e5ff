package geom

import (
	"image/color"
	"math"
	"testing"

	"github.com/example/scribble/internal/shape"
)

func TestBoxHandleAtCornerPrecedence(t *testing.T) {
	b := shape.Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
	cases := []struct {
		p    shape.Point
		want Handle
	}{
		{shape.Point{X: 3, Y: 4}, TopLeft},
		{shape.Point{X: 97, Y: 10}, TopRight},
		{shape.Point{X: 10, Y: 95}, BottomLeft},
		{shape.Point{X: 100, Y: 100}, BottomRight},
		{shape.Point{X: 108, Y: 108}, BottomRight},
		{shape.Point{X: 50, Y: 50}, Middle},
		{shape.Point{X: 11, Y: 11}, Middle},
		{shape.Point{X: 150, Y: 50}, None},
		{shape.Point{X: -11, Y: 0}, None},
	}
	for _, c := range cases {
		if got := BoxHandleAt(c.p, b, Offset); got != c.want {
			t.Errorf("BoxHandleAt(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestBoxHandleAtNeverMiddleInsideCornerZone(t *testing.T) {
	b := shape.Box{X1: 20, Y1: 20, X2: 60, Y2: 60}
	for _, c := range b.Corners() {
		for dx := -Offset; dx <= Offset; dx += 5 {
			for dy := -Offset; dy <= Offset; dy += 5 {
				p := c.Add(float64(dx), float64(dy))
				if h := BoxHandleAt(p, b, Offset); !h.IsCorner() {
					t.Fatalf("point %v near corner %v gave %v", p, c, h)
				}
			}
		}
	}
}

func TestLineHandleAt(t *testing.T) {
	c := shape.LineCoords{StartX: 0, StartY: 0, EndX: 100, EndY: 0}
	contains := func(p shape.Point) bool {
		return PointInPolyline(p, []shape.Point{c.Start(), c.End()}, 4)
	}
	cases := []struct {
		p    shape.Point
		want Handle
	}{
		{shape.Point{X: 2, Y: -3}, Start},
		{shape.Point{X: 95, Y: 5}, End},
		{shape.Point{X: 50, Y: 1}, Middle},
		{shape.Point{X: 50, Y: 20}, None},
	}
	for _, tc := range cases {
		if got := LineHandleAt(tc.p, c, Offset, contains); got != tc.want {
			t.Errorf("LineHandleAt(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := shape.Point{X: 0, Y: 0}, shape.Point{X: 10, Y: 0}
	if d := DistanceToSegment(shape.Point{X: 5, Y: 3}, a, b); d != 3 {
		t.Fatalf("perpendicular distance = %v", d)
	}
	if d := DistanceToSegment(shape.Point{X: 13, Y: 4}, a, b); d != 5 {
		t.Fatalf("past-end distance = %v", d)
	}
	if d := DistanceToSegment(shape.Point{X: 3, Y: 4}, a, a); d != 5 {
		t.Fatalf("degenerate distance = %v", d)
	}
}

func TestScaleOriginIsOppositeCorner(t *testing.T) {
	b := shape.Box{X1: 10, Y1: 20, X2: 30, Y2: 60}
	pairs := map[Handle]shape.Point{
		TopLeft:     {X: 30, Y: 60},
		TopRight:    {X: 10, Y: 60},
		BottomLeft:  {X: 30, Y: 20},
		BottomRight: {X: 10, Y: 20},
	}
	for h, want := range pairs {
		if got := ScaleOrigin(h, b); got != want {
			t.Errorf("ScaleOrigin(%v) = %v, want %v", h, got, want)
		}
	}
}

func TestScaleFactorDominantAxis(t *testing.T) {
	wide := shape.Box{X1: 0, Y1: 0, X2: 100, Y2: 50}
	if k := ScaleFactor(BottomRight, wide, shape.Point{X: 200, Y: 0}); k != 2 {
		t.Fatalf("wide factor = %v, want 2", k)
	}
	tall := shape.Box{X1: 0, Y1: 0, X2: 50, Y2: 100}
	if k := ScaleFactor(BottomRight, tall, shape.Point{X: 500, Y: 50}); k != 0.5 {
		t.Fatalf("tall factor = %v, want 0.5", k)
	}
	if k := ScaleFactor(TopLeft, wide, shape.Point{X: 50, Y: 0}); k != 0.5 {
		t.Fatalf("top-left factor = %v, want 0.5", k)
	}
	if k := ScaleFactor(BottomRight, wide, shape.Point{X: -40, Y: 0}); k != MinScale {
		t.Fatalf("inverted drag factor = %v, want clamp %v", k, MinScale)
	}
	if k := ScaleFactor(BottomRight, shape.Box{X1: 5, Y1: 5, X2: 5, Y2: 5}, shape.Point{X: 80, Y: 80}); k != 1 {
		t.Fatalf("degenerate factor = %v, want 1", k)
	}
}

func TestScaleStrokeKeepsAnchorFixed(t *testing.T) {
	s := shape.NewStroke(shape.Point{X: 0, Y: 0}, 1, color.RGBA{}, shape.PaintOver)
	s.Add(shape.Point{X: 100, Y: 50})
	s.Commit()

	out := ScaleStroke(s, BottomRight, shape.Point{X: 200, Y: 0})
	if out.Points[0] != (shape.Point{X: 0, Y: 0}) {
		t.Fatalf("anchor moved to %v", out.Points[0])
	}
	if out.Points[1] != (shape.Point{X: 200, Y: 100}) {
		t.Fatalf("far point = %v, want (200,100)", out.Points[1])
	}
	if out.Box != (shape.Box{X1: 0, Y1: 0, X2: 200, Y2: 100}) {
		t.Fatalf("box = %v", out.Box)
	}
	if s.Points[1] != (shape.Point{X: 100, Y: 50}) {
		t.Fatalf("source stroke mutated")
	}
}

func TestScaleTextScalesFont(t *testing.T) {
	tx := shape.NewText(shape.Point{X: 10, Y: 10}, shape.Font{Size: 20, Family: "sans-serif"}, color.RGBA{})
	tx.Commit(100, 20)

	out := ScaleText(tx, BottomRight, shape.Point{X: 160, Y: 0})
	if math.Abs(out.Font.Size-30) > 1e-9 {
		t.Fatalf("font size = %v, want 30", out.Font.Size)
	}
	if out.Origin != tx.Origin {
		t.Fatalf("origin moved from %v to %v", tx.Origin, out.Origin)
	}
	if out.Box.X2 != 160 || out.Box.Y2 != 40 {
		t.Fatalf("box = %v", out.Box)
	}
	if tx.Font.Size != 20 {
		t.Fatalf("source text mutated")
	}
}

func TestScaleTextStopsAtFontFloor(t *testing.T) {
	tx := shape.NewText(shape.Point{X: 0, Y: 0}, shape.Font{Size: 4, Family: "sans-serif"}, color.RGBA{})
	tx.Commit(40, 4)

	out := ScaleText(tx, BottomRight, shape.Point{X: 0, Y: 0})
	if out.Font.Size != shape.MinFontSize {
		t.Fatalf("font size = %v, want %v", out.Font.Size, shape.MinFontSize)
	}
	if out.Box.Width() != 10 || out.Box.Height() != 1 {
		t.Fatalf("box = %v, want it scaled by the font's factor", out.Box)
	}
}

func TestMoveLineEndpoint(t *testing.T) {
	l := shape.NewLine(shape.Point{X: 0, Y: 0}, 2, color.RGBA{})
	l.End = shape.Point{X: 100, Y: 0}
	out := Scale(l, End, shape.Point{X: 100, Y: 100}).(*shape.Line)
	want := shape.LineCoords{StartX: 0, StartY: 0, EndX: 100, EndY: 100}
	if out.Coords() != want {
		t.Fatalf("coords = %+v, want %+v", out.Coords(), want)
	}
	out = Scale(l, Start, shape.Point{X: -5, Y: 7}).(*shape.Line)
	if out.End != l.End || out.Start != (shape.Point{X: -5, Y: 7}) {
		t.Fatalf("start drag gave %+v", out.Coords())
	}
}
