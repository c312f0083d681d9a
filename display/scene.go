package display

import (
	"errors"
	"fmt"
	"time"
)

// Scene is an in-memory Canvas. Setters only record changes; Flush forwards
// the scene to its sinks when anything changed since the previous flush.
type Scene struct {
	width, height int

	order []ElementID
	elems map[ElementID]*Element
	sinks []Sink

	dirty   bool
	frame   uint64
	flushed time.Time
	errs    []error

	// Now stamps flushes.
	Now func() time.Time
}

// NewScene creates an empty scene of the given pixel size.
func NewScene(width, height int) *Scene {
	return &Scene{width: width, height: height, elems: map[ElementID]*Element{}, dirty: true, Now: time.Now}
}

func (s *Scene) Size() (int, int) { return s.width, s.height }

// Add registers an element. Later elements draw above earlier ones.
func (s *Scene) Add(e Element) {
	if _, ok := s.elems[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	if e.Scale == 0 {
		e.Scale = 1
	}
	cp := e
	s.elems[e.ID] = &cp
	s.dirty = true
}

// Attach adds a sink.
func (s *Scene) Attach(sink Sink) { s.sinks = append(s.sinks, sink) }

// Element returns a copy of one element.
func (s *Scene) Element(id ElementID) (Element, bool) {
	e, ok := s.elems[id]
	if !ok {
		return Element{}, false
	}
	return *e, true
}

// Elements returns copies of all elements in draw order.
func (s *Scene) Elements() []Element {
	out := make([]Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.elems[id])
	}
	return out
}

// Frame is the number of flushes that reached the sinks.
func (s *Scene) Frame() uint64 { return s.frame }

// Flushed is the time of the last presented flush.
func (s *Scene) Flushed() time.Time { return s.flushed }

func (s *Scene) get(id ElementID) *Element {
	e, ok := s.elems[id]
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("unknown element %q", id))
		return nil
	}
	return e
}

func (s *Scene) SetText(id ElementID, text string) {
	if e := s.get(id); e != nil && e.Text != text {
		e.Text = text
		s.dirty = true
	}
}

func (s *Scene) SetColor(id ElementID, c Color) {
	if e := s.get(id); e != nil && e.Color != c {
		e.Color = c
		s.dirty = true
	}
}

func (s *Scene) SetOutline(id ElementID, c Color) {
	if e := s.get(id); e != nil && e.Outline != c {
		e.Outline = c
		s.dirty = true
	}
}

func (s *Scene) SetHidden(id ElementID, hidden bool) {
	if e := s.get(id); e != nil && e.Hidden != hidden {
		e.Hidden = hidden
		s.dirty = true
	}
}

func (s *Scene) SetRect(id ElementID, x, y, w, h int) {
	if e := s.get(id); e != nil && (e.X != x || e.Y != y || e.W != w || e.H != h) {
		e.X, e.Y, e.W, e.H = x, y, w, h
		s.dirty = true
	}
}

func (s *Scene) SetTile(id ElementID, frame int) {
	if e := s.get(id); e != nil && e.Tile != frame {
		e.Tile = frame
		s.dirty = true
	}
}

// Flush reports misuse of unknown elements and presents the scene to every
// sink if it changed.
func (s *Scene) Flush() error {
	if len(s.errs) > 0 {
		err := errors.Join(s.errs...)
		s.errs = nil
		return err
	}
	if !s.dirty {
		return nil
	}
	s.dirty = false
	s.frame++
	s.flushed = s.Now()
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Present(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
