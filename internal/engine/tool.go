package engine

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/scribble/internal/shape"
)

// Tool is the active drawing tool.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolLine
	ToolText
	ToolSelect
)

var toolNames = [...]string{"pencil", "eraser", "line", "text", "select"}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolPencil, ToolEraser, ToolLine, ToolText, ToolSelect}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool accepts a tool name. "move" is an alias for select.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "move" || n == "resize" {
		return ToolSelect, nil
	}
	for i, s := range toolNames {
		if s == n {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Toolbox supplies the active tool and the style new shapes pick up.
type Toolbox interface {
	ActiveTool() Tool
	LineWidth() float64
	Color() color.RGBA
	Font() shape.Font
}

// StaticToolbox is a Toolbox whose values are set directly.
type StaticToolbox struct {
	Tool  Tool
	Width float64
	Col   color.RGBA
	Face  shape.Font
}

// NewStaticToolbox returns a pencil with a 3px black pen.
func NewStaticToolbox() *StaticToolbox {
	return &StaticToolbox{
		Tool:  ToolPencil,
		Width: 3,
		Col:   color.RGBA{A: 255},
		Face:  shape.DefaultFont,
	}
}

func (t *StaticToolbox) ActiveTool() Tool   { return t.Tool }
func (t *StaticToolbox) LineWidth() float64 { return t.Width }
func (t *StaticToolbox) Color() color.RGBA  { return t.Col }
func (t *StaticToolbox) Font() shape.Font   { return t.Face }

// TextInput is the in-place text entry shown while writing.
type TextInput interface {
	// Open shows the input at the given surface position.
	Open(at shape.Point, font shape.Font, col color.RGBA)
	// Blur makes the input give up focus. The input reports its content
	// through Engine.SubmitText before returning. SubmitText also calls
	// Blur, so an input that is already closed must do nothing.
	Blur()
}
