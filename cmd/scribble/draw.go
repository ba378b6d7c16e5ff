package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/scribble/internal/appstate"
	"github.com/example/scribble/internal/script"
)

// drawCmd opens the interactive drawing window.
type drawCmd struct {
	style     styleFlags
	hitOffset float64
	output    string
	script    string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	cfg := r.cfg()
	d.style.register(fs, cfg)
	fs.Float64Var(&d.hitOffset, "hit-offset", cfg.HitOffset, "distance in pixels at which resize handles can be grabbed")
	fs.StringVar(&d.output, "output", "", "PNG file written by Ctrl+S")
	fs.StringVar(&d.script, "script", "", "gesture script replayed onto the canvas before drawing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.hitOffset < 0 {
		return nil, fmt.Errorf("hit offset cannot be negative")
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	tb, err := d.style.toolbox()
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	size, err := d.style.canvasSize()
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	opts := []appstate.Option{
		appstate.WithToolbox(tb),
		appstate.WithTheme(d.root.currentTheme()),
		appstate.WithCanvasSize(size.X, size.Y),
		appstate.WithHitOffset(d.hitOffset),
		appstate.WithOutput(d.output),
		appstate.WithNotifier(d.root.notifier),
	}
	if d.script != "" {
		cmds, err := loadScript(d.script)
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		opts = append(opts, appstate.WithScript(cmds))
	}
	appstate.New(opts...).Run()
	return nil
}

// loadScript parses a gesture script file, or stdin when path is "-".
func loadScript(path string) ([]script.Command, error) {
	if path == "-" {
		cmds, err := script.Parse(os.Stdin, appstate.ParseColor)
		if err != nil {
			return nil, fmt.Errorf("script <stdin>: %w", err)
		}
		return cmds, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	cmds, err := script.Parse(f, appstate.ParseColor)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return cmds, nil
}
