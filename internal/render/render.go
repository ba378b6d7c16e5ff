package render

import (
	"fmt"
	"image/color"

	"github.com/example/scribble/internal/shape"
	"github.com/example/scribble/internal/store"
)

// Decoration is the selection overlay style.
type Decoration struct {
	Color        color.RGBA
	Marker       color.RGBA
	Width        float64
	MarkerRadius float64
}

// DefaultDecoration is used when no theme overrides it.
var DefaultDecoration = Decoration{
	Color:        color.RGBA{30, 144, 255, 255},
	Marker:       color.RGBA{30, 144, 255, 255},
	Width:        1,
	MarkerRadius: 4,
}

// Frame is everything needed to paint one frame.
type Frame struct {
	Store *store.Store
	// Shadow replaces the selected shape while it is being resized.
	Shadow shape.Shape
	// Pending is the shape under construction, drawn last.
	Pending shape.Shape
}

// Renderer paints frames onto a Surface.
type Renderer struct {
	Surface    Surface
	Decoration Decoration
}

// New returns a renderer using the default decoration.
func New(s Surface) *Renderer {
	return &Renderer{Surface: s, Decoration: DefaultDecoration}
}

// Draw clears the surface and paints f.
func (r *Renderer) Draw(f Frame) {
	r.Surface.Clear()
	if f.Store != nil {
		sel := f.Store.SelectedIndex()
		f.Store.Each(func(i int, sh shape.Shape) bool {
			if i != sel {
				r.DrawShape(sh)
				return true
			}
			if f.Shadow != nil {
				sh = f.Shadow
			}
			r.DrawShape(sh)
			r.DrawSelection(sh)
			return true
		})
	}
	if f.Pending != nil {
		r.DrawShape(f.Pending)
	}
}

// DrawShape paints one shape with its own style.
func (r *Renderer) DrawShape(sh shape.Shape) {
	switch v := sh.(type) {
	case *shape.Stroke:
		r.Surface.StrokePath(v.Points, Pen{Width: v.Width, Color: v.Color, Composite: v.Composite})
	case *shape.Line:
		r.Surface.StrokePath([]shape.Point{v.Start, v.End}, Pen{Width: v.Width, Color: v.Color})
	case *shape.Text:
		r.Surface.FillText(v.Content, v.Font, v.Origin, v.Color)
	default:
		panic(fmt.Sprintf("render: unknown shape %T", sh))
	}
}

// DrawSelection paints the selection overlay for sh.
func (r *Renderer) DrawSelection(sh shape.Shape) {
	d := r.Decoration
	pen := Pen{Width: d.Width, Color: d.Color, Closed: Closed(sh)}
	r.Surface.StrokePath(Outline(sh), pen)
	marker := d.Marker
	if marker.A == 0 {
		marker = d.Color
	}
	for _, m := range Markers(sh) {
		r.Surface.FillCircle(m, d.MarkerRadius, marker)
	}
}

// Closed reports whether the outline of sh is a closed rectangle.
func Closed(sh shape.Shape) bool {
	return sh.Kind() != shape.KindLine
}

// Outline returns the selection outline path of sh.
func Outline(sh shape.Shape) []shape.Point {
	switch v := sh.(type) {
	case *shape.Stroke:
		return boxOutline(v.Box)
	case *shape.Text:
		return boxOutline(v.Box)
	case *shape.Line:
		return []shape.Point{v.Start, v.End}
	default:
		panic(fmt.Sprintf("render: unknown shape %T", sh))
	}
}

// Markers returns the handle marker centers of sh.
func Markers(sh shape.Shape) []shape.Point {
	switch v := sh.(type) {
	case *shape.Stroke:
		c := v.Box.Corners()
		return c[:]
	case *shape.Text:
		c := v.Box.Corners()
		return c[:]
	case *shape.Line:
		return []shape.Point{v.Start, v.End}
	default:
		panic(fmt.Sprintf("render: unknown shape %T", sh))
	}
}

func boxOutline(b shape.Box) []shape.Point {
	return []shape.Point{
		{X: b.X1, Y: b.Y1},
		{X: b.X2, Y: b.Y1},
		{X: b.X2, Y: b.Y2},
		{X: b.X1, Y: b.Y2},
	}
}
