package main

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/scribble/internal/config"
	"github.com/example/scribble/internal/engine"
)

func testRoot() *root {
	return &root{program: "scribble", config: config.New()}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gestures.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseReplayRequiresDestination(t *testing.T) {
	_, err := parseReplayCmd([]string{"-script", "x.txt"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "an output file or -to-clipboard is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseReplayPositionalScript(t *testing.T) {
	cmd, err := parseReplayCmd([]string{"-output", "out.png", "s.txt"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.scriptPath != "s.txt" {
		t.Fatalf("script = %q", cmd.scriptPath)
	}
}

func TestReplayWritesPNG(t *testing.T) {
	script := writeScript(t, "width 6\ncolor red\ndown 10 10\nmove 50 10\nup 50 10\n")
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseReplayCmd([]string{"-script", script, "-output", out, "-size", "64x32"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if r, _, _, a := img.At(30, 10).RGBA(); a == 0 || r>>8 < 200 {
		t.Fatalf("stroke pixel = %v", img.At(30, 10))
	}
	if _, _, _, a := img.At(30, 28).RGBA(); a != 0 {
		t.Fatalf("background not transparent: %v", img.At(30, 28))
	}
}

func TestReplayBackgroundAndClipboard(t *testing.T) {
	var copied image.Image
	original := writeClipboardFn
	writeClipboardFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { writeClipboardFn = original })

	script := writeScript(t, "tool select\ndown 5 5\nup 5 5\n")
	cmd, err := parseReplayCmd([]string{"-script", script, "-to-clipboard", "-background", "white", "-size", "20x20"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if copied == nil {
		t.Fatalf("nothing copied")
	}
	if r, g, b, a := copied.At(3, 3).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Fatalf("background = %v", copied.At(3, 3))
	}
}

func TestReplayClipboardError(t *testing.T) {
	sentinel := errors.New("no display")
	original := writeClipboardFn
	writeClipboardFn = func(image.Image) error { return sentinel }
	t.Cleanup(func() { writeClipboardFn = original })

	cmd, err := parseReplayCmd([]string{"-script", writeScript(t, "undo\n"), "-to-clip", "-size", "4x4"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = cmd.Run()
	if !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "copy to clipboard") {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestReplayScriptErrorCarriesLine(t *testing.T) {
	script := writeScript(t, "down 1 1\nwobble\n")
	cmd, err := parseReplayCmd([]string{"-script", script, "-output", filepath.Join(t.TempDir(), "o.png")}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), script) {
		t.Fatalf("expected script error with context, got %v", err)
	}
}

func TestStyleFlagsToolbox(t *testing.T) {
	s := styleFlags{tool: "line", color: "#00FF00", lineWidth: 4, font: "18px monospace", size: "10x20"}
	tb, err := s.toolbox()
	if err != nil {
		t.Fatalf("toolbox: %v", err)
	}
	if tb.Tool != engine.ToolLine || tb.Col.G != 255 || tb.Width != 4 || tb.Face.Size != 18 {
		t.Fatalf("toolbox = %+v", tb)
	}
	bad := []styleFlags{
		{tool: "brush", color: "red", lineWidth: 1, font: "12px sans"},
		{tool: "pencil", color: "nope", lineWidth: 1, font: "12px sans"},
		{tool: "pencil", color: "red", lineWidth: 0, font: "12px sans"},
		{tool: "pencil", color: "red", lineWidth: 1, font: "big"},
	}
	for _, b := range bad {
		if _, err := b.toolbox(); err == nil {
			t.Errorf("toolbox(%+v) expected error", b)
		}
	}
}

func TestParseSize(t *testing.T) {
	p, err := parseSize("800X600")
	if err != nil || p != image.Pt(800, 600) {
		t.Fatalf("parseSize = %v, %v", p, err)
	}
	for _, v := range []string{"800", "0x10", "axb", "-5x5"} {
		if _, err := parseSize(v); err == nil {
			t.Errorf("parseSize(%q) expected error", v)
		}
	}
}

func TestUsageErrorRendersTemplates(t *testing.T) {
	r := testRoot()
	d, err := parseDrawCmd(nil, r)
	if err != nil {
		t.Fatalf("parse draw: %v", err)
	}
	help := (&UsageError{of: d}).Error()
	if !strings.Contains(help, "scribble draw") || !strings.Contains(help, "-hit-offset") {
		t.Fatalf("draw help = %q", help)
	}
	list, err := parseToolsCmd(nil, r)
	if err != nil {
		t.Fatalf("parse tools: %v", err)
	}
	if help := (&UsageError{of: list}).Error(); !strings.Contains(help, "scribble tools") {
		t.Fatalf("tools help = %q", help)
	}
}

func TestRootRequiresCommand(t *testing.T) {
	r := newRoot()
	var uerr *UsageError
	if err := r.Run(nil); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
