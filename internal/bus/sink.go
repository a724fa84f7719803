package bus

import (
	"sync"

	"github.com/eternallight/lumen/core/broadcast"
	"github.com/eternallight/lumen/core/display"
)

// LocalDisplay adapts an in-process display state machine as the direct
// transport sink.
type LocalDisplay struct {
	d *display.Display

	mu     sync.Mutex
	closed bool
}

// NewLocalDisplay wraps a display state machine.
func NewLocalDisplay(d *display.Display) *LocalDisplay {
	return &LocalDisplay{d: d}
}

// Deliver implements DisplaySink by applying the message synchronously.
func (l *LocalDisplay) Deliver(m broadcast.Message) error {
	l.d.Apply(m)
	return nil
}

// Alive implements DisplaySink.
func (l *LocalDisplay) Alive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed
}

// Close marks the sink dead; subsequent sends skip the direct path.
func (l *LocalDisplay) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}
