package engine

import "fmt"

// Phase is the single active interaction state.
type Phase int

const (
	Idle Phase = iota
	ShouldDraw
	Drawing
	ShouldErase
	Erasing
	ShouldLine
	Lining
	Writing
	ShouldMove
	Moving
	ShouldResize
	Resizing
)

var phaseNames = [...]string{
	Idle:         "idle",
	ShouldDraw:   "should-draw",
	Drawing:      "drawing",
	ShouldErase:  "should-erase",
	Erasing:      "erasing",
	ShouldLine:   "should-line",
	Lining:       "lining",
	Writing:      "writing",
	ShouldMove:   "should-move",
	Moving:       "moving",
	ShouldResize: "should-resize",
	Resizing:     "resizing",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// confirm returns the confirmed phase a pending intent becomes on the first
// move. Confirmed phases map to themselves.
func (p Phase) confirm() Phase {
	switch p {
	case ShouldDraw:
		return Drawing
	case ShouldErase:
		return Erasing
	case ShouldLine:
		return Lining
	case ShouldMove:
		return Moving
	case ShouldResize:
		return Resizing
	}
	return p
}

func (p Phase) stroking() bool {
	return p == ShouldDraw || p == Drawing || p == ShouldErase || p == Erasing
}

func (p Phase) lining() bool {
	return p == ShouldLine || p == Lining
}
