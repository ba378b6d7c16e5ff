// Package store keeps the ordered list of committed shapes and the current
// selection.
package store

import (
	"github.com/example/scribble/internal/shape"
)

// Store is an ordered collection of committed shapes. It is not safe for
// concurrent use.
type Store struct {
	shapes   []shape.Shape
	cursor   int
	selected int
}

// New returns an empty store.
func New() *Store {
	return &Store{cursor: -1, selected: -1}
}

// Append adds s to the end of the store.
func (s *Store) Append(sh shape.Shape) {
	s.shapes = append(s.shapes, sh)
	s.cursor++
}

// RemoveLast pops the most recent shape. It returns false when the store is
// already empty.
func (s *Store) RemoveLast() (shape.Shape, bool) {
	if len(s.shapes) == 0 {
		return nil, false
	}
	last := s.shapes[len(s.shapes)-1]
	s.shapes[len(s.shapes)-1] = nil
	s.shapes = s.shapes[:len(s.shapes)-1]
	s.cursor--
	if s.selected >= len(s.shapes) {
		s.selected = -1
	}
	return last, true
}

// Clear removes every shape and the selection.
func (s *Store) Clear() {
	s.shapes = nil
	s.cursor = -1
	s.selected = -1
}

// Get returns the shape at i.
func (s *Store) Get(i int) (shape.Shape, bool) {
	if i < 0 || i >= len(s.shapes) {
		return nil, false
	}
	return s.shapes[i], true
}

// Selected returns the selected index and shape, if any.
func (s *Store) Selected() (int, shape.Shape, bool) {
	sh, ok := s.Get(s.selected)
	if !ok {
		return -1, nil, false
	}
	return s.selected, sh, true
}

// SelectedIndex is -1 when nothing is selected.
func (s *Store) SelectedIndex() int {
	if _, ok := s.Get(s.selected); !ok {
		return -1
	}
	return s.selected
}

// Select marks index i as selected. Out of range indexes clear the selection.
func (s *Store) Select(i int) {
	if _, ok := s.Get(i); !ok {
		s.selected = -1
		return
	}
	s.selected = i
}

func (s *Store) ClearSelection() { s.selected = -1 }

func (s *Store) Len() int { return len(s.shapes) }

// Cursor is the index of the most recent shape, -1 when empty.
func (s *Store) Cursor() int { return s.cursor }

// Each calls fn for every shape in store order. Returning false stops the
// iteration.
func (s *Store) Each(fn func(i int, sh shape.Shape) bool) {
	for i, sh := range s.shapes {
		if !fn(i, sh) {
			return
		}
	}
}

// FirstHit scans in store order and returns the first index for which hit
// reports a result other than zero. It returns -1 and the zero value when
// nothing matches.
func FirstHit[H comparable](s *Store, hit func(sh shape.Shape) H) (int, H) {
	var zero H
	for i, sh := range s.shapes {
		if h := hit(sh); h != zero {
			return i, h
		}
	}
	return -1, zero
}
