package bus

import (
	"sync"

	"github.com/eternallight/lumen/core/broadcast"
	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/internal/logging"
)

// DisplaySink is the direct transport to the primary display. In-process
// displays implement it over the state machine; remote displays over
// their websocket connection.
type DisplaySink interface {
	Deliver(m broadcast.Message) error
	Alive() bool
}

// Preview mirrors outbound messages into a local preview widget. Mirror
// is called synchronously on every send and must be idempotent.
type Preview interface {
	Mirror(m broadcast.Message)
}

// Channel sends messages over both transports. Every message is
// published on the hub; the direct sink is used opportunistically when a
// display is attached.
type Channel struct {
	hub *Hub

	mu       sync.Mutex
	display  DisplaySink
	previews []Preview

	openOnce sync.Once
}

// NewChannel creates a channel over a running hub.
func NewChannel(hub *Hub) *Channel {
	return &Channel{hub: hub}
}

// AttachDisplay sets the direct-transport sink, replacing any previous
// one.
func (c *Channel) AttachDisplay(sink DisplaySink) {
	c.mu.Lock()
	c.display = sink
	c.mu.Unlock()
	logging.DisplayEvent("attached", "direct")
}

// DetachDisplay removes the direct-transport sink.
func (c *Channel) DetachDisplay() {
	c.mu.Lock()
	c.display = nil
	c.mu.Unlock()
	logging.DisplayEvent("detached", "direct")
}

// HasDisplay reports whether a live display is attached directly.
func (c *Channel) HasDisplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display != nil && c.display.Alive()
}

// AddPreview registers a mini-preview mirror.
func (c *Channel) AddPreview(p Preview) {
	c.mu.Lock()
	c.previews = append(c.previews, p)
	c.mu.Unlock()
}

// Send broadcasts a message on both transports and mirrors it into the
// previews. The returned flag reports the direct path only: the hub
// publish always happens, but hub delivery is fire-and-forget.
func (c *Channel) Send(m broadcast.Message) bool {
	raw, err := broadcast.Encode(m)
	if err != nil {
		logging.Error("failed to encode broadcast message", "kind", string(m.Kind), "error", err)
		return false
	}

	c.hub.Publish(raw)

	c.mu.Lock()
	display := c.display
	previews := make([]Preview, len(c.previews))
	copy(previews, c.previews)
	c.mu.Unlock()

	delivered := false
	if display != nil && display.Alive() {
		if err := display.Deliver(m); err != nil {
			logging.Error("direct display delivery failed", "kind", string(m.Kind),
				"error", lumerr.NewTransport("direct", err.Error()))
		} else {
			delivered = true
		}
	}

	for _, p := range previews {
		p.Mirror(m)
	}

	logging.BroadcastEvent(string(m.Kind), delivered)
	return delivered
}

// DisplayOpener opens a display surface. Preferred placement targets an
// external screen; Fallback opens at default geometry.
type DisplayOpener interface {
	OpenPreferred() (DisplaySink, error)
	OpenFallback() (DisplaySink, error)
}

// OpenDisplay opens and attaches a display, preferring external-screen
// placement and falling back to default geometry. Total failure is
// reported once and not retried.
func (c *Channel) OpenDisplay(opener DisplayOpener) bool {
	sink, err := opener.OpenPreferred()
	if err != nil {
		logging.Debug("preferred display placement failed", "error", err)
		sink, err = opener.OpenFallback()
	}
	if err != nil {
		c.openOnce.Do(func() {
			logging.Error("failed to open display", "error", err)
		})
		return false
	}

	c.AttachDisplay(sink)
	return true
}
