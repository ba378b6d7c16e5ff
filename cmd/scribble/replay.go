package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/example/scribble/internal/appstate"
	"github.com/example/scribble/internal/clipboard"
	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/script"
)

var writeClipboardFn = clipboard.WriteImage

// replayCmd runs a gesture script headlessly and exports the result.
type replayCmd struct {
	style       styleFlags
	hitOffset   float64
	scriptPath  string
	output      string
	toClipboard bool
	background  string
	*root
	fs *flag.FlagSet
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	cfg := r.cfg()
	c.style.register(fs, cfg)
	fs.Float64Var(&c.hitOffset, "hit-offset", cfg.HitOffset, "distance in pixels at which resize handles can be grabbed")
	fs.StringVar(&c.scriptPath, "script", "", `gesture script to replay ("-" reads stdin)`)
	fs.StringVar(&c.output, "output", "", "PNG file to write")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&c.background, "background", "", "fill color behind the drawing (transparent when empty)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && c.scriptPath == "" {
		c.scriptPath = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.scriptPath == "" {
		return nil, fmt.Errorf("a script is required")
	}
	if c.output == "" && !c.toClipboard {
		return nil, fmt.Errorf("an output file or -to-clipboard is required")
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	cmds, err := loadScript(c.scriptPath)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	img, err := c.render(context.Background(), cmds)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if c.output != "" {
		if err := writePNG(c.output, img); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		abs := c.output
		if p, err := filepath.Abs(c.output); err == nil {
			abs = p
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", abs)
		c.root.notifySave(c.output)
	}
	if c.toClipboard {
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("replay: copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "drawing copied to clipboard")
		c.root.notifyCopy(filepath.Base(c.scriptPath), img)
	}
	return nil
}

func (c *replayCmd) render(ctx context.Context, cmds []script.Command) (*image.RGBA, error) {
	tb, err := c.style.toolbox()
	if err != nil {
		return nil, err
	}
	size, err := c.style.canvasSize()
	if err != nil {
		return nil, err
	}
	surface := render.NewRasterSurface(size.X, size.Y)
	eng, err := engine.New(surface, tb,
		engine.WithHitOffset(c.hitOffset),
		engine.WithDecoration(c.root.currentTheme().Decoration()),
	)
	if err != nil {
		return nil, err
	}
	if err := script.Run(ctx, eng, tb, cmds); err != nil {
		return nil, err
	}
	// Export committed shapes only, without selection decoration.
	eng.PointerCancel()
	eng.ToolChanged()
	eng.Store().ClearSelection()
	eng.Redraw()

	if c.background == "" {
		return surface.Image(), nil
	}
	bg, err := appstate.ParseColor(c.background)
	if err != nil {
		return nil, err
	}
	return flatten(surface.Image(), bg), nil
}

func flatten(src *image.RGBA, bg color.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Over)
	return out
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
