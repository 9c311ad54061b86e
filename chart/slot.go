package chart

import (
	"sync"

	"github.com/moyoez/statusboard/types"
)

// CountsRenderer is the chart capability a Slot draws with.
type CountsRenderer interface {
	RenderCounts(c types.Counts) (*Drawable, error)
}

// Slot owns at most one live Drawable. Every redraw releases the previous
// drawable before the next one is built.
type Slot struct {
	mu         sync.RWMutex
	renderer   CountsRenderer
	current    *Drawable
	counts     types.Counts
	generation uint64
}

func NewSlot(renderer CountsRenderer) *Slot {
	return &Slot{renderer: renderer}
}

// Update redraws for c. It is a no-op when the live drawable already shows c.
// On a render error the slot is left empty so the next Update retries.
func (s *Slot) Update(c types.Counts) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.counts == c {
		return false, nil
	}
	if s.current != nil {
		_ = s.current.Close()
		s.current = nil
	}

	d, err := s.renderer.RenderCounts(c)
	if err != nil {
		return false, err
	}
	s.current = d
	s.counts = c
	s.generation++
	return true, nil
}

// Current returns the live drawable (nil if none) and how many times the slot has been drawn.
func (s *Slot) Current() (*Drawable, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.generation
}

// Close releases the live drawable.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}
