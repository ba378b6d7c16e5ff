package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const checkerSize = 8

type paintState struct {
	width, height int
	canvasOrigin  image.Point
	// canvas is a private copy of the drawing surface.
	canvas       *image.RGBA
	toolbar      toolbarState
	text         textSnapshot
	status       string
	message      string
	messageUntil time.Time
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (((x-rect.Min.X)/size)+((y-rect.Min.Y)/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// backdrop caches the checkerboard drawn behind the transparent canvas.
type backdrop struct {
	img         *image.RGBA
	light, dark color.RGBA
}

func (b *backdrop) drawTo(dst *image.RGBA, rect image.Rectangle, th *theme.Theme) {
	size := rect.Size()
	if b.img == nil || b.img.Bounds().Size() != size || b.light != th.CheckerLight || b.dark != th.CheckerDark {
		b.img = image.NewRGBA(image.Rectangle{Max: size})
		b.light, b.dark = th.CheckerLight, th.CheckerDark
		drawCheckerboard(b.img, b.img.Bounds(), checkerSize, b.light, b.dark)
	}
	draw.Draw(dst, rect, b.img, image.Point{}, draw.Src)
}

func snapshot(src *image.RGBA) *image.RGBA {
	dup := image.NewRGBA(src.Bounds())
	draw.Draw(dup, dup.Bounds(), src, src.Bounds().Min, draw.Src)
	return dup
}

// frameRenderer owns everything only the paint goroutine touches.
type frameRenderer struct {
	theme    *theme.Theme
	buttons  []*CacheButton
	backdrop backdrop
	faces    *render.Faces
}

func (fr *frameRenderer) compose(ctx context.Context, dst *image.RGBA, st paintState) bool {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{fr.theme.Background}, image.Point{}, draw.Src)

	canvasRect := st.canvas.Bounds().Add(st.canvasOrigin)
	fr.backdrop.drawTo(dst, canvasRect, fr.theme)
	if ctx.Err() != nil {
		return false
	}
	draw.Draw(dst, canvasRect, st.canvas, st.canvas.Bounds().Min, draw.Over)
	if ctx.Err() != nil {
		return false
	}

	if st.text.active {
		fr.drawTextInput(dst, st.canvasOrigin, st.text)
	}

	drawToolbar(dst, fr.theme, fr.buttons, st.height, st.toolbar)
	drawStatus(dst, fr.theme, st)
	return ctx.Err() == nil
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, fr *frameRenderer, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !fr.compose(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawTextInput paints the text being typed plus a caret, top-left anchored
// like committed text.
func (fr *frameRenderer) drawTextInput(dst *image.RGBA, origin image.Point, t textSnapshot) {
	if fr.faces == nil {
		fr.faces = render.NewFaces(0)
	}
	face, err := fr.faces.Face(t.font)
	if err != nil {
		log.Printf("text input font: %v", err)
		return
	}
	ascent := face.Metrics().Ascent
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.col), Face: face}
	d.Dot = fixed.Point26_6{
		X: fixed.I(origin.X) + fixed.Int26_6(t.at.X*64),
		Y: fixed.I(origin.Y) + fixed.Int26_6(t.at.Y*64) + ascent,
	}
	d.DrawString(t.content + "|")
}

func drawStatus(dst *image.RGBA, th *theme.Theme, st paintState) {
	msg := st.status
	if st.message != "" && time.Now().Before(st.messageUntil) {
		msg = st.message
	}
	if msg == "" {
		return
	}
	left := st.canvasOrigin.X
	rect := image.Rect(left, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(left+4, rect.Min.Y+14)}
	d.DrawString(msg)
}
