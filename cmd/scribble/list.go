package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/example/scribble/internal/appstate"
	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/theme"
)

// listCmd prints one of the static option lists.
type listCmd struct {
	*root
	fs       *flag.FlagSet
	name     string
	template string
	show     func() error
}

func parseListCmd(name string, args []string, r *root, show func(*root) error) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r, fs: fs, name: name, template: name + ".txt"}
	cmd.show = func() error { return show(cmd.root) }
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *listCmd) Run() error { return c.show() }

func (c *listCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *listCmd) Template() string { return c.template }

func parseColorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("colors", args, r, printColors)
}

func parseWidthsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("widths", args, r, printWidths)
}

func parseToolsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("tools", args, r, printTools)
}

func parseThemesCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("themes", args, r, printThemes)
}

func printColors(r *root) error {
	colors := appstate.PaletteColors()
	fmt.Fprintln(os.Stdout, "available colors (* marks the configured color):")
	want, _ := appstate.ParseColor(r.cfg().Color)
	for _, entry := range colors {
		marker := " "
		if entry.Color == want {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %-10s %s\n", marker, entry.Name, theme.Hex(entry.Color))
	}
	fmt.Fprintln(os.Stdout, "any CSS color name or #RRGGBB[AA] value is also accepted")
	return nil
}

func printWidths(r *root) error {
	fmt.Fprintln(os.Stdout, "available stroke widths (* marks the configured width):")
	for _, width := range appstate.WidthOptions() {
		marker := " "
		if width == r.cfg().LineWidth {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %4gpx\n", marker, width)
	}
	return nil
}

func printTools(r *root) error {
	fmt.Fprintln(os.Stdout, "available tools (* marks the configured tool):")
	configured, _ := engine.ParseTool(r.cfg().Tool)
	for _, t := range engine.Tools() {
		marker := " "
		if t == configured {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %c  %s\n", marker, t.String()[0], t)
	}
	return nil
}

func printThemes(r *root) error {
	fmt.Fprintln(os.Stdout, "available themes:")
	for _, name := range theme.Names() {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	var custom []string
	for name := range r.cfg().Themes {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	for _, name := range custom {
		fmt.Fprintf(os.Stdout, "  %s (config)\n", name)
	}
	return nil
}
