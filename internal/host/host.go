// Package host defines the input-surface contract the binder listens
// on, plus concrete surfaces: a tcell-backed terminal and test fakes.
package host

import (
	"github.com/kstrand/keychord/internal/input/key"
)

// Event is one input event delivered by a surface.
type Event struct {
	// Key is the canonical key identity of the event.
	Key key.Event

	// Trusted reports whether the event came from a real input
	// device. Untrusted (synthetic) events are ignored by the binder.
	Trusted bool

	// Composing reports whether the event is part of an IME
	// composition. Composition input never matches bindings and
	// forces the binder back to idle.
	Composing bool

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a trusted, non-composing event for the given key.
func NewEvent(k key.Event) *Event {
	return &Event{Key: k, Trusted: true}
}

// PreventDefault asks the surface to suppress the event's default
// behavior.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation asks the surface to stop delivering the event to
// further handlers.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Listener receives events from a surface.
type Listener func(*Event)

// Surface is a single-channel input event source. A surface carries at
// most one listener; AddListener replaces any previous one.
type Surface interface {
	AddListener(Listener)
	RemoveListener()
}
