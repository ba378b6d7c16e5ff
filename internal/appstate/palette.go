package appstate

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/scribble/internal/theme"
)

type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Maroon", color.RGBA{128, 0, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Orange", color.RGBA{255, 165, 0, 255}},
		{"Teal", color.RGBA{0, 128, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
)

var (
	widthsMu sync.RWMutex
	widths   = []float64{1, 2, 3, 5, 8, 13}
)

// PaletteColors returns the swatches shown in the toolbar.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// EnsurePaletteColor makes sure col is a swatch and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	if name == "" {
		name = theme.Hex(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// WidthOptions returns the stroke widths shown in the toolbar.
func WidthOptions() []float64 {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	out := make([]float64, len(widths))
	copy(out, widths)
	return out
}

// EnsureWidth makes sure width is offered and returns its index.
func EnsureWidth(width float64) int {
	if width < 1 {
		width = 1
	}
	widthsMu.Lock()
	defer widthsMu.Unlock()
	for idx, existing := range widths {
		if existing == width {
			return idx
		}
	}
	widths = append(widths, width)
	sort.Float64s(widths)
	return sort.SearchFloat64s(widths, width)
}

func paletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

func paletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return palette[clampIndex(idx, len(palette))].Color
}

func widthsLen() int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return len(widths)
}

func widthAt(idx int) float64 {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return widths[clampIndex(idx, len(widths))]
}

func clampIndex(idx, n int) int {
	if idx < 0 || n == 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// ParseColor resolves a CSS color name, a palette name or a #RRGGBB[AA]
// value.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	for _, entry := range PaletteColors() {
		if strings.EqualFold(entry.Name, name) {
			return entry.Color, nil
		}
	}
	if strings.HasPrefix(name, "#") {
		c, err := theme.ParseColor(name)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}
