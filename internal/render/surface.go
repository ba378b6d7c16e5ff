// Package render repaints the canvas from the shape store.
package render

import (
	"image/color"

	"github.com/example/scribble/internal/shape"
)

// Pen is the stroke style for a path.
type Pen struct {
	Width     float64
	Color     color.RGBA
	Composite shape.Composite
	Closed    bool
}

// Surface is the drawing capability the renderer paints onto.
type Surface interface {
	Clear()
	StrokePath(pts []shape.Point, pen Pen)
	FillCircle(c shape.Point, r float64, col color.RGBA)
	FillText(text string, font shape.Font, origin shape.Point, col color.RGBA)
	MeasureText(text string, font shape.Font) (w, h float64)
	IsPointInStroke(pts []shape.Point, width float64, p shape.Point) bool
}
