// Package appstate hosts the interactive drawing window.
package appstate

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/scribble/internal/clipboard"
	"github.com/example/scribble/internal/engine"
	"github.com/example/scribble/internal/notify"
	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/script"
	"github.com/example/scribble/internal/theme"
)

const messageDuration = 2 * time.Second

// AppState holds application configuration for the UI.
type AppState struct {
	Toolbox   *engine.StaticToolbox
	Theme     *theme.Theme
	Width     int
	Height    int
	HitOffset float64
	Output    string
	Notifier  *notify.Notifier
	Script    []script.Command

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithToolbox sets the initial tool and style.
func WithToolbox(tb *engine.StaticToolbox) Option { return func(a *AppState) { a.Toolbox = tb } }

// WithTheme sets the window colors.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithCanvasSize sets the drawing surface size in pixels.
func WithCanvasSize(w, h int) Option {
	return func(a *AppState) {
		if w > 0 && h > 0 {
			a.Width, a.Height = w, h
		}
	}
}

// WithHitOffset sets the handle grab distance.
func WithHitOffset(px float64) Option { return func(a *AppState) { a.HitOffset = px } }

// WithOutput sets the PNG path written by Ctrl+S.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithNotifier sets the desktop notifier used for saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithScript replays cmds onto the canvas before the window opens.
func WithScript(cmds []script.Command) Option { return func(a *AppState) { a.Script = cmds } }

// WithOnClose registers a callback invoked once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the given options applied.
func New(opts ...Option) *AppState {
	a := &AppState{
		Width:     1024,
		Height:    768,
		HitOffset: 10,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Toolbox == nil {
		a.Toolbox = engine.NewStaticToolbox()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) Run() { driver.Main(a.Main) }

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// session is the window-independent half of the UI: it turns mouse, touch
// and key events into engine calls.
type session struct {
	app     *AppState
	surface *render.RasterSurface
	eng     *engine.Engine
	tools   *engine.StaticToolbox
	input   *textInput
	buttons []*CacheButton
	origin  image.Point

	colorIdx int
	widthIdx int
	pressed  bool
	hover    toolbarHit

	message      string
	messageUntil time.Time

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string

	copyImage func(image.Image) error
}

func newSession(a *AppState) (*session, error) {
	s := &session{
		app:       a,
		surface:   render.NewRasterSurface(a.Width, a.Height),
		tools:     a.Toolbox,
		input:     newTextInput(),
		origin:    image.Point{X: toolbarWidthFor(engine.Tools())},
		copyImage: clipboard.WriteImage,
	}
	eng, err := engine.New(s.surface, s.tools,
		engine.WithTextInput(s.input),
		engine.WithHitOffset(a.HitOffset),
		engine.WithDecoration(a.Theme.Decoration()),
	)
	if err != nil {
		return nil, err
	}
	s.eng = eng
	s.input.submit = eng.SubmitText

	s.colorIdx = EnsurePaletteColor(s.tools.Col, "")
	s.widthIdx = EnsureWidth(s.tools.Width)
	s.tools.Width = widthAt(s.widthIdx)

	for _, t := range engine.Tools() {
		s.buttons = append(s.buttons, &CacheButton{Button: &ToolButton{
			label:    toolLabel(t),
			tool:     t,
			theme:    a.Theme,
			onSelect: s.setTool,
		}})
	}
	s.registerActions()

	if len(a.Script) > 0 {
		if err := script.Run(context.Background(), eng, s.tools, a.Script); err != nil {
			return nil, fmt.Errorf("replay script: %w", err)
		}
		s.colorIdx = EnsurePaletteColor(s.tools.Col, "")
		s.widthIdx = EnsureWidth(s.tools.Width)
	}
	eng.Redraw()
	return s, nil
}

func (s *session) register(name string, keys KeyboardShortcuts, fn func()) {
	s.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			s.keyboardAction[sc] = name
		}
	}
}

func (s *session) registerActions() {
	s.actions = map[string]func(){}
	s.keyboardAction = map[KeyShortcut]string{}

	for _, t := range engine.Tools() {
		tool := t
		s.register("tool-"+t.String(), shortcutList{{Rune: rune(t.String()[0])}}, func() { s.setTool(tool) })
	}
	s.keyboardAction[KeyShortcut{Rune: 'm'}] = "tool-select"
	s.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if !s.eng.Undo() {
			s.flash("nothing to undo")
		}
	})
	s.register("clear", shortcutList{{Rune: 'x', Modifiers: key.ModControl | key.ModShift}}, func() {
		s.eng.Clear()
		s.flash("canvas cleared")
	})
	s.register("cancel", shortcutList{{Code: key.CodeEscape}}, func() {
		s.pressed = false
		s.eng.PointerCancel()
	})
	s.register("thinner", shortcutList{{Rune: '['}}, func() { s.setWidth(s.widthIdx - 1) })
	s.register("thicker", shortcutList{{Rune: ']'}}, func() { s.setWidth(s.widthIdx + 1) })
	s.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, s.copy)
	s.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, s.save)
}

func (s *session) flash(msg string) {
	log.Print(msg)
	s.message = msg
	s.messageUntil = time.Now().Add(messageDuration)
}

func (s *session) setTool(t engine.Tool) {
	s.tools.Tool = t
	s.eng.ToolChanged()
}

func (s *session) setColor(idx int) {
	s.colorIdx = clampIndex(idx, paletteLen())
	s.tools.Col = paletteColorAt(s.colorIdx)
}

func (s *session) setWidth(idx int) {
	s.widthIdx = clampIndex(idx, widthsLen())
	s.tools.Width = widthAt(s.widthIdx)
}

func (s *session) layout() toolbarLayout {
	return layoutToolbar(s.origin.X, s.tools.Tool, len(s.buttons), paletteLen(), widthsLen())
}

func (s *session) activate(h toolbarHit) {
	switch h.kind {
	case hitTool:
		s.buttons[h.idx].Activate()
	case hitColor:
		s.setColor(h.idx)
	case hitWidth:
		s.setWidth(h.idx)
	case hitSize:
		s.tools.Face.Size = fontSizes[h.idx]
	}
}

// handleMouse reports whether the window needs repainting.
func (s *session) handleMouse(e mouse.Event) bool {
	p := image.Point{int(e.X), int(e.Y)}
	if !s.pressed && p.X < s.origin.X {
		h := s.layout().hit(p)
		changed := h != s.hover
		s.hover = h
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			s.activate(h)
			return true
		}
		return changed
	}
	redraw := s.hover != toolbarHit{}
	s.hover = toolbarHit{}

	ptr := engine.Normalize(float64(e.X), float64(e.Y), s.origin)
	if e.Button == mouse.ButtonLeft {
		switch e.Direction {
		case mouse.DirPress:
			s.pressed = true
			s.eng.PointerDown(ptr)
			return true
		case mouse.DirRelease:
			if !s.pressed {
				return redraw
			}
			s.pressed = false
			s.eng.PointerUp(ptr)
			return true
		}
	}
	if e.Direction == mouse.DirNone && s.pressed {
		s.eng.PointerMove(ptr)
		return true
	}
	return redraw
}

// handleTouch maps the first finger onto the pointer gestures.
func (s *session) handleTouch(e touch.Event) bool {
	if e.Sequence != 0 {
		return false
	}
	var dir mouse.Direction
	switch e.Type {
	case touch.TypeBegin:
		dir = mouse.DirPress
	case touch.TypeMove:
		dir = mouse.DirNone
	case touch.TypeEnd:
		dir = mouse.DirRelease
	default:
		return false
	}
	return s.handleMouse(mouse.Event{X: e.X, Y: e.Y, Button: mouse.ButtonLeft, Direction: dir})
}

// handleKey reports whether the window needs repainting and whether the user
// asked to quit.
func (s *session) handleKey(e key.Event) (redraw, quit bool) {
	if s.input.HandleKey(e) {
		return true, false
	}
	if e.Direction != key.DirPress {
		return false, false
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
	if ks.Rune > 0 {
		ks.Code = 0
	} else {
		ks.Rune = 0
	}
	if action, ok := s.keyboardAction[ks]; ok {
		s.actions[action]()
		return true, false
	}
	if ks.Modifiers == 0 && ks.Rune == 'q' {
		return false, true
	}
	return false, false
}

// focusLost cancels a drag whose release will never arrive.
func (s *session) focusLost() bool {
	if !s.pressed {
		return false
	}
	s.pressed = false
	s.eng.PointerCancel()
	return true
}

func (s *session) copy() {
	img := snapshot(s.surface.Image())
	if err := s.copyImage(img); err != nil {
		log.Printf("copy: %v", err)
		s.flash("copy failed")
		return
	}
	s.flash("drawing copied to clipboard")
	s.app.Notifier.Copy("drawing", img)
}

func (s *session) save() {
	output := s.app.Output
	if output == "" {
		s.flash("no output file; start with -output")
		return
	}
	out, err := os.Create(output)
	if err != nil {
		log.Printf("save: %v", err)
		return
	}
	if err := png.Encode(out, s.surface.Image()); err != nil {
		log.Printf("save: %v", err)
		if cerr := out.Close(); cerr != nil {
			log.Printf("save: closing file: %v", cerr)
		}
		return
	}
	if err := out.Close(); err != nil {
		log.Printf("save: closing file: %v", err)
		return
	}
	s.flash(fmt.Sprintf("saved %s", output))
	s.app.Notifier.Save(output)
}

func (s *session) statusLine() string {
	return fmt.Sprintf("%s  %s  shapes: %d", s.tools.Tool, s.eng.Phase(), s.eng.Store().Len())
}

func (s *session) paintState(width, height int) paintState {
	return paintState{
		width:        width,
		height:       height,
		canvasOrigin: s.origin,
		canvas:       snapshot(s.surface.Image()),
		toolbar: toolbarState{
			tool:     s.tools.Tool,
			colorIdx: s.colorIdx,
			widthIdx: s.widthIdx,
			fontSize: s.tools.Face.Size,
			hover:    s.hover,
		},
		text:         s.input.snapshot(),
		status:       s.statusLine(),
		message:      s.message,
		messageUntil: s.messageUntil,
	}
}

func (a *AppState) Main(s screen.Screen) {
	sess, err := newSession(a)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}

	width := sess.origin.X + a.Width
	height := a.Height + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Scribble"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	fr := &frameRenderer{theme: a.Theme, buttons: sess.buttons, faces: render.NewFaces(0)}
	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, fr, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && sess.focusLost() {
				w.Send(paint.Event{})
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := sess.paintState(width, height)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if sess.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case touch.Event:
			if sess.handleTouch(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			redraw, quit := sess.handleKey(e)
			if quit {
				stopPaint()
				return
			}
			if redraw {
				w.Send(paint.Event{})
			}
		}
	}
}
