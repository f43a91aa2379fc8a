// Package session holds per-conversation state: the surface state machine,
// the message history and the current variant.
package session

import (
	"github.com/alexanderramin/coach/internal/domain"
)

// State is the mutable record of one conversation. It is not safe for
// concurrent use; callers serialize access.
type State struct {
	variant  domain.Variant
	surface  domain.SurfaceState
	history  []domain.Message
	welcomed bool
}

// New returns a closed session with an empty history in variant v.
// An invalid v falls back to the default variant.
func New(v domain.Variant) *State {
	if !v.Valid() {
		v = domain.DefaultVariant
	}
	return &State{variant: v, surface: domain.SurfaceClosed}
}

func (s *State) CurrentVariant() domain.Variant { return s.variant }

// SetCurrentVariant ignores variants outside the closed set.
func (s *State) SetCurrentVariant(v domain.Variant) {
	if v.Valid() {
		s.variant = v
	}
}

func (s *State) Surface() domain.SurfaceState { return s.surface }

// Open shows the surface. welcomeDue is true exactly once: on the first open
// while the history is still empty.
func (s *State) Open() (changed, welcomeDue bool) {
	if s.surface == domain.SurfaceOpen {
		return false, false
	}
	s.surface = domain.SurfaceOpen
	if !s.welcomed {
		s.welcomed = true
		welcomeDue = len(s.history) == 0
	}
	return true, welcomeDue
}

// Minimize is only valid from open.
func (s *State) Minimize() bool {
	if s.surface != domain.SurfaceOpen {
		return false
	}
	s.surface = domain.SurfaceMinimized
	return true
}

// Restore returns a minimized surface to open.
func (s *State) Restore() bool {
	if s.surface != domain.SurfaceMinimized {
		return false
	}
	s.surface = domain.SurfaceOpen
	return true
}

// Close is valid from any state.
func (s *State) Close() bool {
	if s.surface == domain.SurfaceClosed {
		return false
	}
	s.surface = domain.SurfaceClosed
	return true
}

// Toggle flips closed and open; a minimized surface is restored.
func (s *State) Toggle() (changed, welcomeDue bool) {
	switch s.surface {
	case domain.SurfaceClosed:
		return s.Open()
	case domain.SurfaceMinimized:
		return s.Restore(), false
	default:
		return s.Close(), false
	}
}

// Apply dispatches a surface action.
func (s *State) Apply(a domain.SurfaceAction) (changed, welcomeDue bool) {
	switch a {
	case domain.ActionOpen:
		if s.surface == domain.SurfaceMinimized {
			return s.Restore(), false
		}
		return s.Open()
	case domain.ActionClose:
		return s.Close(), false
	case domain.ActionMinimize:
		return s.Minimize(), false
	case domain.ActionToggle:
		return s.Toggle()
	}
	return false, false
}

// Append adds m to the history. It is the only history mutator.
func (s *State) Append(m domain.Message) {
	s.history = append(s.history, m)
}

// History returns a copy of the messages in order.
func (s *State) History() []domain.Message {
	return append([]domain.Message(nil), s.history...)
}

func (s *State) Len() int { return len(s.history) }

// Welcomed reports whether the welcome has been scheduled.
func (s *State) Welcomed() bool { return s.welcomed }
