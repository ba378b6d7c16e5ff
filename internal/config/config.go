package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/scribble/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	Tool         string
	LineWidth    float64
	Color        string
	Font         string
	HitOffset    float64
	CanvasWidth  int
	CanvasHeight int
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Tool:         "pencil",
		LineWidth:    3,
		Color:        "black",
		Font:         "24px sans-serif",
		HitOffset:    10,
		CanvasWidth:  1024,
		CanvasHeight: 768,
		Themes:       make(map[string]*theme.Theme),
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "tool = %s\n", c.Tool)
	fmt.Fprintf(&sb, "line_width = %g\n", c.LineWidth)
	fmt.Fprintf(&sb, "color = %s\n", c.Color)
	fmt.Fprintf(&sb, "font = %s\n", c.Font)
	fmt.Fprintf(&sb, "hit_offset = %g\n", c.HitOffset)
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
