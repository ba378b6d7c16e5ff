package theme

import (
	"image/color"

	"github.com/example/scribble/internal/render"
)

// Theme defines the colors of the window chrome and the selection overlay.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Toolbar text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight    color.RGBA
	CheckerDark     color.RGBA
	Selection       color.RGBA // Selection box and line
	SelectionMarker color.RGBA // Corner and endpoint markers
}

// Default returns the hardcoded light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		Selection:             color.RGBA{30, 144, 255, 255},
		SelectionMarker:       color.RGBA{30, 144, 255, 255},
	}
}

// Decoration returns the selection overlay style for this theme.
func (t *Theme) Decoration() render.Decoration {
	d := render.DefaultDecoration
	d.Color = t.Selection
	d.Marker = t.SelectionMarker
	return d
}
