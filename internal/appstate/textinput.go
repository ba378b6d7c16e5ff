package appstate

import (
	"image/color"
	"log"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/scribble/internal/clipboard"
	"github.com/example/scribble/internal/shape"
)

// textInput is the in-place editor opened by the text tool. It satisfies
// engine.TextInput.
type textInput struct {
	mu     sync.Mutex
	active bool
	at     shape.Point
	font   shape.Font
	col    color.RGBA
	buf    []rune

	// submit receives the content when the input loses focus.
	submit func(content string) bool
	// paste returns clipboard text for Ctrl+V.
	paste func() (string, error)
}

func newTextInput() *textInput {
	return &textInput{paste: clipboard.ReadText}
}

func (t *textInput) Open(at shape.Point, font shape.Font, col color.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = true
	t.at = at
	t.font = font
	t.col = col
	t.buf = t.buf[:0]
}

func (t *textInput) Blur() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.active = false
	content := string(t.buf)
	t.buf = t.buf[:0]
	submit := t.submit
	t.mu.Unlock()
	if submit != nil {
		submit(content)
	}
}

// Active reports whether the editor has focus.
func (t *textInput) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

type textSnapshot struct {
	active  bool
	at      shape.Point
	font    shape.Font
	col     color.RGBA
	content string
}

func (t *textInput) snapshot() textSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return textSnapshot{active: t.active, at: t.at, font: t.font, col: t.col, content: string(t.buf)}
}

// HandleKey edits the buffer. It reports whether the event was consumed.
func (t *textInput) HandleKey(e key.Event) bool {
	if !t.Active() {
		return false
	}
	if e.Direction == key.DirRelease {
		return true
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		t.Blur()
		return true
	case key.CodeEscape:
		t.mu.Lock()
		t.buf = t.buf[:0]
		t.mu.Unlock()
		t.Blur()
		return true
	case key.CodeDeleteBackspace:
		t.mu.Lock()
		if len(t.buf) > 0 {
			t.buf = t.buf[:len(t.buf)-1]
		}
		t.mu.Unlock()
		return true
	}
	if e.Modifiers&key.ModControl != 0 {
		if unicode.ToLower(e.Rune) == 'v' && t.paste != nil {
			s, err := t.paste()
			if err != nil {
				log.Printf("paste: %v", err)
				return true
			}
			t.insert(firstLine(s))
		}
		return true
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		t.insert(string(e.Rune))
	}
	return true
}

func (t *textInput) insert(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range s {
		if unicode.IsPrint(r) {
			t.buf = append(t.buf, r)
		}
	}
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return strings.TrimRight(s, "\r")
}
