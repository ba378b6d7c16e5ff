package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/example/scribble/internal/appstate"
	"github.com/example/scribble/internal/config"
	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/notify"
	"github.com/example/scribble/internal/shape"
	"github.com/example/scribble/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	verbose     bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("scribble", flag.ExitOnError),
		program:  "scribble",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log gesture state changes to stderr")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the config file, in that order.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SCRIBBLE_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// styleFlags are the pen settings shared by draw and replay. Defaults come
// from the config file.
type styleFlags struct {
	tool      string
	color     string
	lineWidth float64
	font      string
	size      string
}

func (s *styleFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	if cfg == nil {
		cfg = config.New()
	}
	fs.StringVar(&s.tool, "tool", cfg.Tool, "initial tool (pencil, eraser, line, text, select)")
	fs.StringVar(&s.color, "color", cfg.Color, "pen color name or hex value")
	fs.Float64Var(&s.lineWidth, "line-width", cfg.LineWidth, "pen width in pixels")
	fs.StringVar(&s.font, "font", cfg.Font, `text font, for example "24px sans-serif"`)
	fs.StringVar(&s.size, "size", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight), "canvas size as WIDTHxHEIGHT")
}

func (s *styleFlags) toolbox() (*engine.StaticToolbox, error) {
	tb := engine.NewStaticToolbox()
	tool, err := engine.ParseTool(s.tool)
	if err != nil {
		return nil, err
	}
	tb.Tool = tool
	col, err := appstate.ParseColor(s.color)
	if err != nil {
		return nil, err
	}
	tb.Col = col
	if s.lineWidth <= 0 {
		return nil, fmt.Errorf("line width must be positive")
	}
	tb.Width = s.lineWidth
	f, err := shape.ParseFont(s.font)
	if err != nil {
		return nil, err
	}
	tb.Face = f
	return tb, nil
}

func (s *styleFlags) canvasSize() (image.Point, error) {
	return parseSize(s.size)
}

func parseSize(v string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(v)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", v)
	}
	var p image.Point
	if _, err := fmt.Sscanf(w+" "+h, "%d %d", &p.X, &p.Y); err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q: %w", v, err)
	}
	if p.X <= 0 || p.Y <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q: dimensions must be positive", v)
	}
	return p, nil
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail, img)
}

func (r *root) currentTheme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}
