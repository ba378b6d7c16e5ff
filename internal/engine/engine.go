// Package engine turns pointer gestures into edits on the shape store.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/scribble/internal/geom"
	"github.com/example/scribble/internal/render"
	"github.com/example/scribble/internal/shape"
	"github.com/example/scribble/internal/store"
)

var (
	ErrNoSurface = errors.New("engine: drawing surface is required")
	ErrNoToolbox = errors.New("engine: toolbox is required")
)

// ResizeEdit is the uncommitted geometry of a shape being resized.
type ResizeEdit struct {
	ID     uuid.UUID
	Handle geom.Handle
	Shadow shape.Shape
}

// Engine is the interaction state machine. It is not safe for concurrent
// use; every call is expected from the one event-handling goroutine.
type Engine struct {
	surface  render.Surface
	renderer *render.Renderer
	tools    Toolbox
	input    TextInput
	store    *store.Store
	offset   float64
	onRedraw func()

	phase   Phase
	handle  geom.Handle
	last    shape.Point
	pending shape.Shape
	edit    *ResizeEdit
}

// Option configures an Engine.
type Option func(*Engine)

// WithTextInput sets the collaborator opened by the text tool.
func WithTextInput(in TextInput) Option {
	return func(e *Engine) { e.input = in }
}

// WithStore uses st instead of a fresh store.
func WithStore(st *store.Store) Option {
	return func(e *Engine) { e.store = st }
}

// WithHitOffset overrides the handle tolerance.
func WithHitOffset(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.offset = px
		}
	}
}

// WithDecoration sets the selection overlay style.
func WithDecoration(d render.Decoration) Option {
	return func(e *Engine) { e.renderer.Decoration = d }
}

// WithRedrawHook is called after every repaint.
func WithRedrawHook(fn func()) Option {
	return func(e *Engine) { e.onRedraw = fn }
}

// New creates an engine drawing onto surface with styles from tools.
func New(surface render.Surface, tools Toolbox, opts ...Option) (*Engine, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if tools == nil {
		return nil, ErrNoToolbox
	}
	e := &Engine{
		surface:  surface,
		renderer: render.New(surface),
		tools:    tools,
		store:    store.New(),
		offset:   geom.Offset,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Phase reports the gesture state.
func (e *Engine) Phase() Phase { return e.phase }

// Handle reports the handle grabbed by the current resize.
func (e *Engine) Handle() geom.Handle { return e.handle }

// Store returns the shapes committed so far.
func (e *Engine) Store() *store.Store { return e.store }

// Toolbox returns the style source consulted on each gesture.
func (e *Engine) Toolbox() Toolbox { return e.tools }

// Pending returns the shape under construction, or nil.
func (e *Engine) Pending() shape.Shape { return e.pending }

// Shadow returns the in-progress resize, if any.
func (e *Engine) Shadow() (*ResizeEdit, bool) {
	return e.edit, e.edit != nil
}

func (e *Engine) setPhase(p Phase) {
	if p != e.phase {
		Logger().Debug("phase", "from", e.phase, "to", p, "handle", e.handle)
	}
	e.phase = p
}

// Redraw repaints the surface from the store.
func (e *Engine) Redraw() {
	f := render.Frame{Store: e.store}
	if e.edit != nil {
		f.Shadow = e.edit.Shadow
	}
	if e.phase.stroking() || e.phase.lining() {
		f.Pending = e.pending
	}
	e.renderer.Draw(f)
	if e.onRedraw != nil {
		e.onRedraw()
	}
}

// PointerDown starts a gesture with the active tool.
func (e *Engine) PointerDown(ptr Pointer) {
	p := ptr.point()
	if e.phase == Writing {
		e.blur()
	}
	switch {
	case e.phase.lining():
		Logger().Debug("pointer down ignored while lining")
		return
	case e.phase != Idle:
		// The release of the previous gesture was lost.
		Logger().Debug("completing stuck gesture", "phase", e.phase)
		e.PointerUp(At(e.last.X, e.last.Y))
	}

	e.last = p
	tool := e.tools.ActiveTool()
	switch tool {
	case ToolPencil:
		e.pending = shape.NewStroke(p, e.tools.LineWidth(), e.tools.Color(), shape.PaintOver)
		e.setPhase(ShouldDraw)
	case ToolEraser:
		e.pending = shape.NewStroke(p, e.tools.LineWidth(), e.tools.Color(), shape.Erase)
		e.setPhase(ShouldErase)
	case ToolLine:
		e.pending = shape.NewLine(p, e.tools.LineWidth(), e.tools.Color())
		e.setPhase(ShouldLine)
	case ToolText:
		t := shape.NewText(p, e.tools.Font(), e.tools.Color())
		e.pending = t
		e.setPhase(Writing)
		if e.input != nil {
			e.input.Open(p, t.Font, t.Color)
		}
	case ToolSelect:
		e.selectAt(p)
		e.Redraw()
	default:
		panic(fmt.Sprintf("engine: unhandled tool %v", tool))
	}
}

func (e *Engine) handleAt(sh shape.Shape, p shape.Point) geom.Handle {
	return geom.HandleAt(sh, p, e.offset, e.surface.IsPointInStroke)
}

// selectAt re-tests the current selection before scanning the store in
// order for the first shape under p.
func (e *Engine) selectAt(p shape.Point) {
	if _, sh, ok := e.store.Selected(); ok {
		if h := e.handleAt(sh, p); h != geom.None {
			e.grab(h)
			return
		}
	}
	e.store.ClearSelection()
	i, h := store.FirstHit(e.store, func(sh shape.Shape) geom.Handle {
		return e.handleAt(sh, p)
	})
	if i < 0 {
		Logger().Debug("select missed", "x", p.X, "y", p.Y)
		return
	}
	e.store.Select(i)
	e.grab(h)
}

func (e *Engine) grab(h geom.Handle) {
	e.handle = h
	if h.IsResize() {
		e.setPhase(ShouldResize)
		return
	}
	e.setPhase(ShouldMove)
}

// mustSelected returns the selection during move and resize, where its
// absence is a programming error.
func (e *Engine) mustSelected() shape.Shape {
	_, sh, ok := e.store.Selected()
	if !ok {
		panic(fmt.Sprintf("engine: %v without a selected shape", e.phase))
	}
	return sh
}

// PointerMove feeds one drag sample.
func (e *Engine) PointerMove(ptr Pointer) {
	p := ptr.point()
	switch e.phase {
	case ShouldDraw, Drawing, ShouldErase, Erasing:
		e.pending.(*shape.Stroke).Add(p)
	case ShouldLine, Lining:
		e.pending.(*shape.Line).End = p
	case ShouldMove, Moving:
		shape.Translate(e.mustSelected(), p.X-e.last.X, p.Y-e.last.Y)
	case ShouldResize, Resizing:
		sh := e.mustSelected()
		e.edit = &ResizeEdit{
			ID:     sh.ShapeID(),
			Handle: e.handle,
			Shadow: geom.Scale(sh, e.handle, p),
		}
	default:
		return
	}
	e.last = p
	e.setPhase(e.phase.confirm())
	e.Redraw()
}

// PointerUp finishes the current gesture. Text stays open until blur.
func (e *Engine) PointerUp(ptr Pointer) {
	switch e.phase {
	case Idle, Writing:
		return
	case ShouldDraw, ShouldErase:
		Logger().Debug("click discarded", "tool", e.tools.ActiveTool())
	case Drawing, Erasing:
		s := e.pending.(*shape.Stroke)
		if len(s.Points) > 1 {
			s.Commit()
			e.store.Append(s)
		}
	case ShouldLine, Lining:
		e.store.Append(e.pending)
	case Resizing:
		e.commitResize()
	}
	e.reset()
	e.Redraw()
}

func (e *Engine) commitResize() {
	sh := e.mustSelected()
	if e.edit == nil {
		panic("engine: resize committed without shadow geometry")
	}
	if e.edit.ID != sh.ShapeID() {
		panic(fmt.Sprintf("engine: shadow for %v applied to %v", e.edit.ID, sh.ShapeID()))
	}
	shape.Assign(sh, e.edit.Shadow)
	e.edit = nil
}

func (e *Engine) reset() {
	e.pending = nil
	e.edit = nil
	e.handle = geom.None
	e.setPhase(Idle)
}

func (e *Engine) blur() {
	if e.input != nil {
		e.input.Blur()
	}
	if e.phase == Writing {
		e.SubmitText("")
	}
}

// SubmitText commits the text being written and closes the text input.
// Empty text is dropped. It reports whether a shape was added.
func (e *Engine) SubmitText(content string) bool {
	if e.phase != Writing {
		return false
	}
	t := e.pending.(*shape.Text)
	e.reset()
	if e.input != nil {
		e.input.Blur()
	}
	added := content != ""
	if added {
		t.Content = content
		w, h := e.surface.MeasureText(content, t.Font)
		t.Commit(w, h)
		e.store.Append(t)
	}
	e.Redraw()
	return added
}

// PointerCancel abandons the gesture in progress after the release was lost.
// Strokes, lines and resize shadows are dropped. Moves keep the distance
// already travelled. Writing is left to the text input.
func (e *Engine) PointerCancel() {
	if e.phase == Idle || e.phase == Writing {
		return
	}
	Logger().Debug("gesture cancelled", "phase", e.phase)
	e.reset()
	e.Redraw()
}

// Undo removes the most recent shape.
func (e *Engine) Undo() bool {
	e.abort()
	_, ok := e.store.RemoveLast()
	e.Redraw()
	return ok
}

// Clear removes every shape.
func (e *Engine) Clear() {
	e.abort()
	e.store.Clear()
	e.Redraw()
}

func (e *Engine) abort() {
	if e.phase == Writing {
		e.blur()
	}
	if e.phase != Idle {
		e.reset()
	}
}

// ToolChanged must be called after the active tool changes. Leaving the
// select tool drops the selection.
func (e *Engine) ToolChanged() {
	if e.phase == Writing {
		e.blur()
	}
	if e.tools.ActiveTool() != ToolSelect && e.store.SelectedIndex() >= 0 {
		e.store.ClearSelection()
		e.Redraw()
	}
}
