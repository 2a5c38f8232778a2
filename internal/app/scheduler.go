package app

import "sync"

// RedrawScheduler decouples state mutation from rendering: any number of
// Request calls between flushes collapse into at most one scheduled
// redraw, so bursts of move or wheel events never multiply render cost.
type RedrawScheduler struct {
	mu      sync.Mutex
	pending bool

	schedule func(func()) // defers a function to the next frame
	redraw   func()
}

// NewRedrawScheduler creates a scheduler. schedule defers a callback to
// the next animation frame (the UI layer supplies the frame source);
// redraw performs the actual repaint.
func NewRedrawScheduler(schedule func(func()), redraw func()) *RedrawScheduler {
	return &RedrawScheduler{schedule: schedule, redraw: redraw}
}

// Request asks for a redraw. Requests arriving while one is already
// scheduled are absorbed.
func (s *RedrawScheduler) Request() {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	s.schedule(s.flush)
}

func (s *RedrawScheduler) flush() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()

	s.redraw()
}
