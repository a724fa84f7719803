package bus

import (
	"sync"

	"github.com/eternallight/lumen/core/broadcast"
	"github.com/eternallight/lumen/core/display"
)

// placeholder is shown in previews when nothing is broadcast.
const placeholder = "—"

// PreviewState is the mirrored content of one mini preview.
type PreviewState struct {
	Text       string `json:"text"`
	Reference  string `json:"reference,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Background string `json:"background,omitempty"`
}

// MiniPreview keeps a mirror of the last broadcast for the operator UI.
// Mirroring is a full overwrite per message, so replayed or duplicated
// messages converge to the same state.
type MiniPreview struct {
	mu    sync.Mutex
	state PreviewState
}

// NewMiniPreview creates a preview showing the placeholder.
func NewMiniPreview() *MiniPreview {
	return &MiniPreview{state: PreviewState{Text: placeholder}}
}

// State returns a snapshot of the mirrored content.
func (p *MiniPreview) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mirror implements Preview.
func (p *MiniPreview) Mirror(m broadcast.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch m.Kind {
	case broadcast.KindShowVerse:
		if m.Verse == nil || m.Verse.Text == "" {
			p.clear()
			return
		}
		p.state.Text = m.Verse.Text
		p.state.Reference = m.Verse.Reference
		p.state.Thumbnail = ""

	case broadcast.KindShowNote:
		if m.Note == nil || m.Note.Text == "" {
			p.clear()
			return
		}
		p.state.Text = m.Note.Text
		p.state.Reference = ""
		p.state.Thumbnail = ""

	case broadcast.KindShowSong:
		if m.Song == nil || m.Song.Text == "" {
			p.clear()
			return
		}
		p.state.Text = m.Song.Text
		p.state.Reference = m.Song.StanzaLabel
		p.state.Thumbnail = ""

	case broadcast.KindShowSlide:
		if m.Slide == nil {
			p.clear()
			return
		}
		p.state.Text = ""
		p.state.Reference = ""
		if m.Slide.ImageURL != "" {
			p.state.Thumbnail = m.Slide.ImageURL
		} else {
			p.state.Thumbnail = m.Slide.ImageData
		}

	case broadcast.KindHideVerse:
		p.clear()

	case broadcast.KindUpdateSettings:
		if m.Settings != nil && m.Settings.Theme != nil {
			bg, _ := display.Settings{Theme: *m.Settings.Theme}.Resolve()
			p.state.Background = bg
		}

	case broadcast.KindSetBackground:
		if m.Background != nil {
			p.state.Background = m.Background.DataURL
		}
	}
}

// clear resets the content fields, keeping the background recolor.
func (p *MiniPreview) clear() {
	p.state.Text = placeholder
	p.state.Reference = ""
	p.state.Thumbnail = ""
}
