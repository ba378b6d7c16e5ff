package script

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/shape"
)

func hexOnly(s string) (color.RGBA, error) {
	if s == "#FF0000" {
		return color.RGBA{255, 0, 0, 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

const sample = `
# a stroke, a line, then resize the line
width 4
color #FF0000
down 10 10
move 50 10
move 50,50
up 50 50

tool line
down 0 100
move 100 100
up 100 100

tool select
down 100 100
move 100 150
up 100 150

tool text
font 18px monospace
down 5 5
type hello
`

func TestParseAndRun(t *testing.T) {
	cmds, err := Parse(strings.NewReader(sample), hexOnly)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tb := engine.NewStaticToolbox()
	eng, err := engine.New(render.NewRasterSurface(200, 200), tb)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if err := Run(context.Background(), eng, tb, cmds); err != nil {
		t.Fatalf("Run: %v", err)
	}

	st := eng.Store()
	if st.Len() != 3 {
		t.Fatalf("store len = %d, want 3", st.Len())
	}
	s, _ := st.Get(0)
	stroke := s.(*shape.Stroke)
	if stroke.Width != 4 || stroke.Color.R != 255 {
		t.Fatalf("stroke style = %v %v", stroke.Width, stroke.Color)
	}
	if stroke.Box != (shape.Box{X1: 10, Y1: 10, X2: 50, Y2: 50}) {
		t.Fatalf("stroke box = %v", stroke.Box)
	}
	l, _ := st.Get(1)
	if got := l.(*shape.Line).Coords(); got != (shape.LineCoords{StartX: 0, StartY: 100, EndX: 100, EndY: 150}) {
		t.Fatalf("line = %+v", got)
	}
	tx, _ := st.Get(2)
	if got := tx.(*shape.Text); got.Content != "hello" || got.Font.Family != "monospace" {
		t.Fatalf("text = %+v", got)
	}
}

func TestParseErrorsCarryLine(t *testing.T) {
	cases := []string{
		"down 1",
		"tool brush",
		"width -2",
		"color nope",
		"undo now",
		"jump 1 2",
	}
	for _, c := range cases {
		_, err := Parse(strings.NewReader("# header\n"+c), hexOnly)
		if err == nil {
			t.Errorf("Parse(%q) expected error", c)
			continue
		}
		if !strings.HasPrefix(err.Error(), "line 2:") {
			t.Errorf("Parse(%q) error %q lacks line number", c, err)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cmds, err := Parse(strings.NewReader("down 1 1\nmove 2 2\nup 2 2\n"), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tb := engine.NewStaticToolbox()
	eng, _ := engine.New(render.NewRasterSurface(10, 10), tb)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, eng, tb, cmds); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v", err)
	}
	if eng.Store().Len() != 0 {
		t.Fatalf("commands ran after cancel")
	}
}
