// Package app provides application-level state, configuration, and events.
package app

import (
	"sync"

	"numberline/internal/ticks"
)

// EventType identifies different application events.
type EventType int

const (
	// EventThresholdsChanged fires when the tick density thresholds change.
	EventThresholdsChanged EventType = iota
	// EventMarkersToggled fires when constant markers are shown or hidden.
	EventMarkersToggled
	// EventViewportChanged fires when the viewport has been mutated and a
	// redraw has been scheduled; the status bar listens to this.
	EventViewportChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds application configuration and the event fan-out. The
// viewport itself is owned by the gesture controller; State only carries
// the settings around it.
type State struct {
	mu sync.RWMutex

	thresholds  ticks.Thresholds
	showMarkers bool

	listeners map[EventType][]EventListener
}

// NewState creates application state with default settings.
func NewState() *State {
	return &State{
		thresholds:  ticks.DefaultThresholds(),
		showMarkers: true,
		listeners:   make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Thresholds returns the current tick density thresholds.
func (s *State) Thresholds() ticks.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// SetThresholds replaces the tick density thresholds.
func (s *State) SetThresholds(th ticks.Thresholds) {
	s.mu.Lock()
	s.thresholds = th
	s.mu.Unlock()
	s.Emit(EventThresholdsChanged, th)
}

// ShowMarkers reports whether constant markers are drawn.
func (s *State) ShowMarkers() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showMarkers
}

// SetShowMarkers shows or hides the constant markers.
func (s *State) SetShowMarkers(show bool) {
	s.mu.Lock()
	s.showMarkers = show
	s.mu.Unlock()
	s.Emit(EventMarkersToggled, show)
}
