// Package script replays recorded gestures against an engine.
//
// A script is one command per line:
//
//	tool pencil
//	width 4
//	color #FF0000
//	font 24px sans-serif
//	down 10 10
//	move 50 10
//	up 50 10
//	type hello
//	cancel
//	undo
//	clear
//
// Blank lines and lines starting with # are ignored.
package script

import (
	"bufio"
	"context"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/shape"
)

// Op is a script verb.
type Op string

const (
	OpTool   Op = "tool"
	OpWidth  Op = "width"
	OpColor  Op = "color"
	OpFont   Op = "font"
	OpDown   Op = "down"
	OpMove   Op = "move"
	OpUp     Op = "up"
	OpType   Op = "type"
	OpCancel Op = "cancel"
	OpUndo   Op = "undo"
	OpClear  Op = "clear"
)

// Command is one parsed script line.
type Command struct {
	Line  int
	Op    Op
	Point shape.Point
	Tool  engine.Tool
	Width float64
	Color color.RGBA
	Font  shape.Font
	Text  string
}

// ColorParser resolves color names and hex values.
type ColorParser func(string) (color.RGBA, error)

// Parse reads a script. Color arguments are resolved with parseColor.
func Parse(r io.Reader, parseColor ColorParser) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		cmd, err := parseCommand(Op(strings.ToLower(verb)), rest, parseColor)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

func parseCommand(op Op, arg string, parseColor ColorParser) (Command, error) {
	c := Command{Op: op}
	switch op {
	case OpTool:
		t, err := engine.ParseTool(arg)
		if err != nil {
			return c, err
		}
		c.Tool = t
	case OpWidth:
		w, err := strconv.ParseFloat(arg, 64)
		if err != nil || w <= 0 {
			return c, fmt.Errorf("invalid width %q", arg)
		}
		c.Width = w
	case OpColor:
		if parseColor == nil {
			return c, fmt.Errorf("colors are not supported")
		}
		col, err := parseColor(arg)
		if err != nil {
			return c, err
		}
		c.Color = col
	case OpFont:
		f, err := shape.ParseFont(arg)
		if err != nil {
			return c, err
		}
		c.Font = f
	case OpDown, OpMove, OpUp:
		p, err := parsePoint(arg)
		if err != nil {
			return c, fmt.Errorf("%s: %w", op, err)
		}
		c.Point = p
	case OpType:
		c.Text = arg
	case OpCancel, OpUndo, OpClear:
		if arg != "" {
			return c, fmt.Errorf("%s takes no arguments", op)
		}
	default:
		return c, fmt.Errorf("unknown command %q", op)
	}
	return c, nil
}

func parsePoint(s string) (shape.Point, error) {
	f := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(f) != 2 {
		return shape.Point{}, fmt.Errorf("want X Y, got %q", s)
	}
	x, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return shape.Point{}, fmt.Errorf("bad y: %w", err)
	}
	return shape.Point{X: x, Y: y}, nil
}

// Run applies cmds in order. Style commands update tb.
func Run(ctx context.Context, eng *engine.Engine, tb *engine.StaticToolbox, cmds []Command) error {
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := engine.At(c.Point.X, c.Point.Y)
		switch c.Op {
		case OpTool:
			tb.Tool = c.Tool
			eng.ToolChanged()
		case OpWidth:
			tb.Width = c.Width
		case OpColor:
			tb.Col = c.Color
		case OpFont:
			tb.Face = c.Font
		case OpDown:
			eng.PointerDown(p)
		case OpMove:
			eng.PointerMove(p)
		case OpUp:
			eng.PointerUp(p)
		case OpType:
			eng.SubmitText(c.Text)
		case OpCancel:
			eng.PointerCancel()
		case OpUndo:
			eng.Undo()
		case OpClear:
			eng.Clear()
		default:
			return fmt.Errorf("line %d: unknown command %q", c.Line, c.Op)
		}
	}
	return nil
}
