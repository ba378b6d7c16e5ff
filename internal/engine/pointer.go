package engine

import (
	"image"

	"github.com/example/scribble/internal/shape"
)

// Pointer is a mouse or single-touch sample. X and Y are surface-local.
type Pointer struct {
	X, Y             float64
	ClientX, ClientY float64
}

// Normalize converts client coordinates into surface space by removing the
// surface's offset within the window.
func Normalize(clientX, clientY float64, origin image.Point) Pointer {
	return Pointer{
		X:       clientX - float64(origin.X),
		Y:       clientY - float64(origin.Y),
		ClientX: clientX,
		ClientY: clientY,
	}
}

// At builds a pointer whose client and surface coordinates match.
func At(x, y float64) Pointer {
	return Pointer{X: x, Y: y, ClientX: x, ClientY: y}
}

func (p Pointer) point() shape.Point {
	return shape.Point{X: p.X, Y: p.Y}
}
