package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/theme"
)

const (
	buttonHeight = 24
	swatchSize   = 16
	swatchStride = 18
	widthRow     = 16
	sizeRow      = 20
	sectionGap   = 4
	statusHeight = 20
)

// fontSizes are the text sizes offered while the text tool is active.
var fontSizes = []float64{12, 16, 20, 24, 32, 48}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ToolButton represents a toolbar button that selects a drawing tool.
type ToolButton struct {
	label string
	tool  engine.Tool
	theme *theme.Theme
	rect  image.Rectangle
	// onSelect is called when the button is activated.
	onSelect func(engine.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := tb.theme.ButtonBackground
	switch state {
	case StateHover:
		c = tb.theme.ButtonBackgroundHover
	case StatePressed:
		c = tb.theme.ButtonBackgroundPress
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	drawBorder(dst, tb.rect, tb.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(tb.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// toolLabel is the button caption, prefixed with its shortcut key.
func toolLabel(t engine.Tool) string {
	name := t.String()
	up := strings.ToUpper(name[:1])
	return up + ":" + up + name[1:]
}

// toolbarWidthFor fits the widest tool label.
func toolbarWidthFor(tools []engine.Tool) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	widest := d.MeasureString("Scribble").Ceil() + 8
	for _, t := range tools {
		if w := d.MeasureString(toolLabel(t)).Ceil() + 8; w > widest {
			widest = w
		}
	}
	return widest
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTool
	hitColor
	hitWidth
	hitSize
)

type toolbarHit struct {
	kind hitKind
	idx  int
}

// toolbarLayout places every toolbar control. The width and size rows only
// appear for the tools they affect.
type toolbarLayout struct {
	width  int
	tools  []image.Rectangle
	colors []image.Rectangle
	widths []image.Rectangle
	sizes  []image.Rectangle
}

func usesWidth(t engine.Tool) bool {
	return t == engine.ToolPencil || t == engine.ToolEraser || t == engine.ToolLine
}

func layoutToolbar(width int, tool engine.Tool, nTools, nColors, nWidths int) toolbarLayout {
	l := toolbarLayout{width: width}
	y := 0
	for i := 0; i < nTools; i++ {
		l.tools = append(l.tools, image.Rect(0, y, width, y+buttonHeight))
		y += buttonHeight
	}
	y += sectionGap
	x := sectionGap
	for i := 0; i < nColors; i++ {
		if x+swatchSize > width {
			x = sectionGap
			y += swatchStride
		}
		l.colors = append(l.colors, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStride
	}
	if nColors > 0 {
		y += swatchStride
	}
	switch {
	case usesWidth(tool):
		y += sectionGap
		for i := 0; i < nWidths; i++ {
			l.widths = append(l.widths, image.Rect(0, y, width, y+widthRow))
			y += widthRow
		}
	case tool == engine.ToolText:
		y += sectionGap
		for range fontSizes {
			l.sizes = append(l.sizes, image.Rect(0, y, width, y+sizeRow))
			y += sizeRow
		}
	}
	return l
}

func (l toolbarLayout) hit(p image.Point) toolbarHit {
	if p.X < 0 || p.X >= l.width {
		return toolbarHit{}
	}
	groups := []struct {
		kind  hitKind
		rects []image.Rectangle
	}{{hitTool, l.tools}, {hitColor, l.colors}, {hitWidth, l.widths}, {hitSize, l.sizes}}
	for _, g := range groups {
		for i, r := range g.rects {
			if p.In(r) {
				return toolbarHit{kind: g.kind, idx: i}
			}
		}
	}
	return toolbarHit{}
}

type toolbarState struct {
	tool     engine.Tool
	colorIdx int
	widthIdx int
	fontSize float64
	hover    toolbarHit
}

func drawToolbar(dst *image.RGBA, th *theme.Theme, buttons []*CacheButton, height int, st toolbarState) {
	l := layoutToolbar(toolbarWidthFor(engine.Tools()), st.tool, len(buttons), paletteLen(), widthsLen())
	draw.Draw(dst, image.Rect(0, 0, l.width, height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	for i, cb := range buttons {
		cb.SetRect(l.tools[i])
		state := StateDefault
		if tb, ok := cb.Button.(*ToolButton); ok && tb.tool == st.tool {
			state = StatePressed
		} else if st.hover == (toolbarHit{kind: hitTool, idx: i}) {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, rect := range l.colors {
		draw.Draw(dst, rect, &image.Uniform{paletteColorAt(i)}, image.Point{}, draw.Src)
		if st.hover == (toolbarHit{kind: hitColor, idx: i}) {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if i == st.colorIdx {
			drawBorder(dst, rect, color.RGBA{255, 255, 255, 255})
			drawBorder(dst, rect.Inset(-1), th.ButtonBorder)
		}
	}

	col := paletteColorAt(st.colorIdx)
	for i, rect := range l.widths {
		drawRow(dst, th, rect, i == st.widthIdx, st.hover == (toolbarHit{kind: hitWidth, idx: i}))
		w := widthAt(i)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(rect.Min.X+4, rect.Min.Y+12)}
		d.DrawString(fmt.Sprintf("%g", w))
		thick := int(w + 0.5)
		if thick > rect.Dy()-2 {
			thick = rect.Dy() - 2
		}
		mid := rect.Min.Y + rect.Dy()/2
		bar := image.Rect(rect.Min.X+30, mid-thick/2, rect.Max.X-4, mid-thick/2+max(thick, 1))
		draw.Draw(dst, bar, &image.Uniform{col}, image.Point{}, draw.Over)
	}

	for i, rect := range l.sizes {
		drawRow(dst, th, rect, fontSizes[i] == st.fontSize, st.hover == (toolbarHit{kind: hitSize, idx: i}))
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(rect.Min.X+4, rect.Min.Y+14)}
		d.DrawString(fmt.Sprintf("%gpx", fontSizes[i]))
	}
}

func drawRow(dst *image.RGBA, th *theme.Theme, rect image.Rectangle, selected, hover bool) {
	c := th.ButtonBackground
	if selected {
		c = th.ButtonBackgroundPress
	} else if hover {
		c = th.ButtonBackgroundHover
	}
	draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

func drawBorder(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
