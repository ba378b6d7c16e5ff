package appstate

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/shape"
	"github.com/example/scribble/internal/theme"
)

func testPaintState(canvas *image.RGBA) paintState {
	return paintState{
		width:        200,
		height:       140,
		canvasOrigin: image.Pt(64, 0),
		canvas:       canvas,
		toolbar:      toolbarState{tool: engine.ToolPencil, fontSize: 24},
		status:       "pencil  Idle  shapes: 0",
	}
}

func TestComposeLayersCanvasOverCheckerboard(t *testing.T) {
	th := theme.Default()
	canvas := image.NewRGBA(image.Rect(0, 0, 100, 100))
	red := color.RGBA{255, 0, 0, 255}
	canvas.SetRGBA(50, 50, red)

	fr := &frameRenderer{theme: th}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 140))
	if !fr.compose(context.Background(), dst, testPaintState(canvas)) {
		t.Fatalf("compose reported cancellation")
	}
	if got := dst.RGBAAt(64+50, 50); got != red {
		t.Fatalf("canvas pixel = %v", got)
	}
	if got := dst.RGBAAt(64, 0); got != th.CheckerLight {
		t.Fatalf("checker origin = %v", got)
	}
	if got := dst.RGBAAt(64+checkerSize, 0); got != th.CheckerDark {
		t.Fatalf("checker neighbour = %v", got)
	}
	if got := dst.RGBAAt(180, 110); got != th.Background {
		t.Fatalf("background = %v", got)
	}
}

func TestComposeStopsWhenCancelled(t *testing.T) {
	fr := &frameRenderer{theme: theme.Default()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dst := image.NewRGBA(image.Rect(0, 0, 200, 140))
	if fr.compose(ctx, dst, testPaintState(image.NewRGBA(image.Rect(0, 0, 10, 10)))) {
		t.Fatalf("compose finished after cancel")
	}
}

func TestComposeDrawsTextInputAndMessage(t *testing.T) {
	fr := &frameRenderer{theme: theme.Default()}
	st := testPaintState(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	st.text = textSnapshot{active: true, at: shape.Point{X: 5, Y: 5}, font: shape.DefaultFont, col: color.RGBA{0, 0, 255, 255}, content: "W"}
	st.message = "saved"
	st.messageUntil = time.Now().Add(time.Minute)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 140))
	fr.compose(context.Background(), dst, st)
	found := false
	for y := 5; y < 40 && !found; y++ {
		for x := 64 + 5; x < 64+40; x++ {
			if c := dst.RGBAAt(x, y); c.B > 200 && c.R < 50 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("typed text not drawn")
	}
}

func TestTextInputPaintsWhileCanvasRendersText(t *testing.T) {
	f := shape.Font{Size: 24, Family: "sans-serif"}
	fr := &frameRenderer{theme: theme.Default(), faces: render.NewFaces(0)}
	surf := render.NewRasterSurface(100, 100)
	snap := textSnapshot{active: true, at: shape.Point{X: 5, Y: 5}, font: f, col: color.RGBA{0, 0, 255, 255}, content: "abc"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		dst := image.NewRGBA(image.Rect(0, 0, 200, 140))
		for i := 0; i < 200; i++ {
			fr.drawTextInput(dst, image.Pt(64, 0), snap)
		}
	}()
	for i := 0; i < 200; i++ {
		surf.FillText("xyz", f, shape.Point{X: 1, Y: 1}, color.RGBA{255, 0, 0, 255})
		surf.MeasureText("xyz", f)
	}
	<-done
}

func TestBackdropCacheFollowsTheme(t *testing.T) {
	var b backdrop
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	b.drawTo(dst, dst.Bounds(), th)
	first := b.img
	b.drawTo(dst, dst.Bounds(), th)
	if b.img != first {
		t.Fatalf("backdrop rebuilt without a change")
	}
	dark := *th
	dark.CheckerLight = color.RGBA{10, 10, 10, 255}
	b.drawTo(dst, dst.Bounds(), &dark)
	if dst.RGBAAt(0, 0) != dark.CheckerLight {
		t.Fatalf("backdrop ignored theme change")
	}
}
