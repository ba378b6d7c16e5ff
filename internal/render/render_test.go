package render

import (
	"image/color"
	"testing"

	"github.com/example/scribble/internal/shape"
	"github.com/example/scribble/internal/store"
)

type call struct {
	op  string
	pts []shape.Point
	pen Pen
}

type recorder struct {
	calls []call
}

func (r *recorder) Clear() { r.calls = append(r.calls, call{op: "clear"}) }
func (r *recorder) StrokePath(pts []shape.Point, pen Pen) {
	r.calls = append(r.calls, call{op: "stroke", pts: append([]shape.Point(nil), pts...), pen: pen})
}
func (r *recorder) FillCircle(c shape.Point, _ float64, _ color.RGBA) {
	r.calls = append(r.calls, call{op: "circle", pts: []shape.Point{c}})
}
func (r *recorder) FillText(_ string, _ shape.Font, o shape.Point, _ color.RGBA) {
	r.calls = append(r.calls, call{op: "text", pts: []shape.Point{o}})
}
func (r *recorder) MeasureText(text string, f shape.Font) (float64, float64) {
	return float64(len(text)) * f.Size / 2, f.Size
}
func (r *recorder) IsPointInStroke([]shape.Point, float64, shape.Point) bool { return false }

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

var black = color.RGBA{A: 255}

func stroke(pts ...shape.Point) *shape.Stroke {
	s := shape.NewStroke(pts[0], 3, black, shape.PaintOver)
	for _, p := range pts[1:] {
		s.Add(p)
	}
	s.Commit()
	return s
}

func TestDrawClearsThenPaintsInOrder(t *testing.T) {
	st := store.New()
	st.Append(stroke(shape.Point{X: 0, Y: 0}, shape.Point{X: 5, Y: 5}))
	l := shape.NewLine(shape.Point{X: 1, Y: 1}, 2, black)
	st.Append(l)

	rec := &recorder{}
	New(rec).Draw(Frame{Store: st})

	if len(rec.calls) != 3 || rec.calls[0].op != "clear" {
		t.Fatalf("calls = %+v", rec.calls)
	}
	if rec.calls[1].pen.Width != 3 || rec.calls[2].pen.Width != 2 {
		t.Fatalf("shapes painted out of order: %+v", rec.calls)
	}
}

func TestSelectionDecorationForBoxShape(t *testing.T) {
	st := store.New()
	st.Append(stroke(shape.Point{X: 10, Y: 10}, shape.Point{X: 50, Y: 50}))
	st.Select(0)

	rec := &recorder{}
	New(rec).Draw(Frame{Store: st})

	if n := rec.count("circle"); n != 4 {
		t.Fatalf("corner markers = %d, want 4", n)
	}
	outline := rec.calls[2]
	if !outline.pen.Closed || outline.pen.Color != DefaultDecoration.Color {
		t.Fatalf("outline pen = %+v", outline.pen)
	}
	if outline.pts[2] != (shape.Point{X: 50, Y: 50}) {
		t.Fatalf("outline = %v", outline.pts)
	}
}

func TestSelectionDecorationForLine(t *testing.T) {
	st := store.New()
	l := shape.NewLine(shape.Point{X: 0, Y: 0}, 2, black)
	l.End = shape.Point{X: 100, Y: 0}
	st.Append(l)
	st.Select(0)

	rec := &recorder{}
	New(rec).Draw(Frame{Store: st})
	if n := rec.count("circle"); n != 2 {
		t.Fatalf("endpoint markers = %d, want 2", n)
	}
	if rec.calls[2].pen.Closed {
		t.Fatalf("line decoration should be open")
	}
}

func TestShadowReplacesSelectedGeometry(t *testing.T) {
	st := store.New()
	s := stroke(shape.Point{X: 0, Y: 0}, shape.Point{X: 10, Y: 10})
	st.Append(s)
	st.Select(0)
	shadow := stroke(shape.Point{X: 0, Y: 0}, shape.Point{X: 40, Y: 40})

	rec := &recorder{}
	New(rec).Draw(Frame{Store: st, Shadow: shadow})

	if got := rec.calls[1].pts[1]; got != (shape.Point{X: 40, Y: 40}) {
		t.Fatalf("drew committed geometry %v instead of shadow", got)
	}
	for _, c := range rec.calls {
		if c.op == "circle" && c.pts[0] == (shape.Point{X: 10, Y: 10}) {
			t.Fatalf("decoration used committed coordinates")
		}
	}
}

func TestPendingDrawnLast(t *testing.T) {
	rec := &recorder{}
	pending := shape.NewText(shape.Point{X: 3, Y: 4}, shape.DefaultFont, black)
	New(rec).Draw(Frame{Store: store.New(), Pending: pending})
	if last := rec.calls[len(rec.calls)-1]; last.op != "text" {
		t.Fatalf("last call = %q", last.op)
	}
}
