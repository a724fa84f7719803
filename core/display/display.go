// Package display models the renderer's state machine: it consumes
// broadcast messages and produces full render frames for a presentation
// surface.
package display

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/eternallight/lumen/core/broadcast"
	"github.com/eternallight/lumen/internal/logging"
)

// Mode is the active presentation mode. Exactly one is active; there is
// no mode history.
type Mode string

const (
	ModeIdle  Mode = "idle"
	ModeVerse Mode = "verse"
	ModeNote  Mode = "note"
	ModeSong  Mode = "song"
	ModeSlide Mode = "slide"
)

// SizeBand selects a font scale; text length picks the band so longer
// passages render smaller.
type SizeBand int

const (
	BandLarge SizeBand = iota
	BandMedium
	BandSmall
)

const (
	// showSettle is the fade-out settle delay before new content renders.
	showSettle = 400 * time.Millisecond
	// hideSettle is the longer settle before the idle placeholder returns.
	hideSettle = 800 * time.Millisecond
)

// Settings are the cross-cutting visual parameters. Theme accepts the
// legacy names "blue", "black" and "forest" or a hex color.
type Settings struct {
	Font      string `json:"font"`
	Theme     string `json:"theme"`
	TextColor string `json:"textColor,omitempty"`
	Size      int    `json:"size"`
}

// DefaultSettings returns the out-of-the-box visual settings.
func DefaultSettings() Settings {
	return Settings{
		Font:  "'Playfair Display', serif",
		Theme: "blue",
		Size:  100,
	}
}

// theme pairs a background color with the accent used for references.
type theme struct {
	background string
	accent     string
}

var legacyThemes = map[string]theme{
	"blue":   {background: "#0f172a", accent: "#d4af37"},
	"black":  {background: "#000000", accent: "#ffffff"},
	"forest": {background: "#052e16", accent: "#86efac"},
}

// Resolve returns the background and accent colors for the settings'
// theme. Hex values pass through with the default accent; unknown names
// fall back to "blue".
func (s Settings) Resolve() (background, accent string) {
	if t, ok := legacyThemes[s.Theme]; ok {
		return t.background, t.accent
	}
	if len(s.Theme) > 0 && s.Theme[0] == '#' {
		return s.Theme, legacyThemes["blue"].accent
	}
	t := legacyThemes["blue"]
	return t.background, t.accent
}

// Frame is a complete render model. Renderers are expected to overwrite
// the whole surface from it; frames are never diffed.
type Frame struct {
	Mode    Mode
	Visible bool

	Text      string
	Reference string
	Band      SizeBand
	Centered  bool
	PreWrap   bool

	SlideData string
	SlideURL  string

	Settings        Settings
	BackgroundColor string
	BackgroundImage string
	AccentColor     string
}

// Renderer receives every frame the state machine produces. Calls happen
// in message order from the applying goroutine or a settle timer.
type Renderer func(Frame)

// Display is the state machine. Settle timers are never cancelled;
// instead each content change bumps a sequence number and a settle
// callback that fires after a newer change is a no-op. The hide settle
// is longer than the show settle, so without the guard a stale hide
// would wipe content installed after it.
type Display struct {
	mu         sync.Mutex
	mode       Mode
	content    Frame
	settings   Settings
	background string
	render     Renderer
	seq        uint64

	showSettle time.Duration
	hideSettle time.Duration
}

// Option configures a Display.
type Option func(*Display)

// WithSettleDelays overrides the fade settle delays.
func WithSettleDelays(show, hide time.Duration) Option {
	return func(d *Display) {
		d.showSettle = show
		d.hideSettle = hide
	}
}

// WithSettings seeds the initial visual settings, normally from the
// persisted settings store.
func WithSettings(s Settings) Option {
	return func(d *Display) { d.settings = s }
}

// New creates an idle Display reporting frames to render.
func New(render Renderer, opts ...Option) *Display {
	d := &Display{
		mode:       ModeIdle,
		settings:   DefaultSettings(),
		render:     render,
		showSettle: showSettle,
		hideSettle: hideSettle,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.content = Frame{Mode: ModeIdle}
	return d
}

// Mode returns the currently active mode.
func (d *Display) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Frame returns a snapshot of the current render frame.
func (d *Display) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.decorate(d.content)
}

// Apply consumes one broadcast message. Messages with no usable content
// are ignored rather than rendered blank.
func (d *Display) Apply(m broadcast.Message) {
	switch m.Kind {
	case broadcast.KindShowVerse:
		if m.Verse == nil || m.Verse.Text == "" {
			return
		}
		d.transition(verseFrame(m.Verse))

	case broadcast.KindShowNote:
		if m.Note == nil {
			return
		}
		if m.Note.IsLiveTyping {
			d.applyLiveNote(m.Note)
			return
		}
		if m.Note.Text == "" {
			return
		}
		d.transition(noteFrame(m.Note))

	case broadcast.KindShowSong:
		if m.Song == nil || m.Song.Text == "" {
			return
		}
		d.transition(songFrame(m.Song))

	case broadcast.KindShowSlide:
		if m.Slide == nil || (m.Slide.ImageData == "" && m.Slide.ImageURL == "") {
			return
		}
		d.transition(slideFrame(m.Slide))

	case broadcast.KindHideVerse:
		d.hide()

	case broadcast.KindUpdateSettings:
		if m.Settings == nil {
			return
		}
		d.updateSettings(m.Settings)

	case broadcast.KindSetBackground:
		if m.Background == nil {
			return
		}
		d.setBackground(m.Background.DataURL)
	}
}

func verseFrame(p *broadcast.VersePayload) Frame {
	return Frame{
		Mode:      ModeVerse,
		Visible:   true,
		Text:      p.Text,
		Reference: p.Reference,
		Band:      verseBand(p.Text),
	}
}

func noteFrame(p *broadcast.NotePayload) Frame {
	return Frame{
		Mode:     ModeNote,
		Visible:  true,
		Text:     p.Text,
		Band:     BandMedium,
		Centered: true,
		PreWrap:  true,
	}
}

func songFrame(p *broadcast.SongPayload) Frame {
	// Song stanzas render centered with the reference suppressed.
	return Frame{
		Mode:     ModeSong,
		Visible:  true,
		Text:     p.Text,
		Band:     songBand(p.Text),
		Centered: true,
	}
}

func slideFrame(p *broadcast.SlidePayload) Frame {
	return Frame{
		Mode:      ModeSlide,
		Visible:   true,
		SlideData: p.ImageData,
		SlideURL:  p.ImageURL,
	}
}

func verseBand(text string) SizeBand {
	switch n := utf8.RuneCountInString(text); {
	case n > 300:
		return BandSmall
	case n > 150:
		return BandMedium
	default:
		return BandLarge
	}
}

func songBand(text string) SizeBand {
	switch n := utf8.RuneCountInString(text); {
	case n > 200:
		return BandSmall
	case n > 100:
		return BandMedium
	default:
		return BandLarge
	}
}

// transition runs the normal fade protocol: hide the current frame, then
// after the settle delay install the new content as a full overwrite and
// show it. A callback superseded by a newer content change is a no-op.
func (d *Display) transition(next Frame) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.content.Visible = false
	out := d.decorate(d.content)
	d.mu.Unlock()
	d.emit(out)

	time.AfterFunc(d.showSettle, func() {
		d.mu.Lock()
		if d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.mode = next.Mode
		d.content = next
		in := d.decorate(d.content)
		d.mu.Unlock()
		logging.DisplayEvent("show", string(next.Mode))
		d.emit(in)
	})
}

func (d *Display) hide() {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.content.Visible = false
	out := d.decorate(d.content)
	d.mu.Unlock()
	d.emit(out)

	time.AfterFunc(d.hideSettle, func() {
		d.mu.Lock()
		if d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.mode = ModeIdle
		d.content = Frame{Mode: ModeIdle}
		in := d.decorate(d.content)
		d.mu.Unlock()
		logging.DisplayEvent("hide", string(ModeIdle))
		d.emit(in)
	})
}

// applyLiveNote swaps note content synchronously with no fade. Notes are
// re-sent on every keystroke while drafted live, so the fade cycle would
// flicker. An empty live note clears the display immediately.
func (d *Display) applyLiveNote(p *broadcast.NotePayload) {
	d.mu.Lock()
	d.seq++
	if p.Text == "" {
		d.mode = ModeIdle
		d.content = Frame{Mode: ModeIdle}
	} else {
		d.mode = ModeNote
		d.content = noteFrame(p)
	}
	f := d.decorate(d.content)
	d.mu.Unlock()
	d.emit(f)
}

// updateSettings merges a partial settings update and re-renders the
// current content synchronously; the mode does not change.
func (d *Display) updateSettings(p *broadcast.SettingsPayload) {
	d.mu.Lock()
	if p.Font != nil {
		d.settings.Font = *p.Font
	}
	if p.Theme != nil {
		d.settings.Theme = *p.Theme
	}
	if p.TextColor != nil {
		d.settings.TextColor = *p.TextColor
	}
	if p.Size != nil {
		d.settings.Size = *p.Size
	}
	f := d.decorate(d.content)
	d.mu.Unlock()
	d.emit(f)
}

func (d *Display) setBackground(dataURL string) {
	d.mu.Lock()
	d.background = dataURL
	f := d.decorate(d.content)
	d.mu.Unlock()
	d.emit(f)
}

// decorate folds the cross-cutting visual parameters into a frame.
// Caller holds the mutex.
func (d *Display) decorate(f Frame) Frame {
	bg, accent := d.settings.Resolve()
	f.Settings = d.settings
	f.BackgroundColor = bg
	f.AccentColor = accent
	f.BackgroundImage = d.background
	return f
}

func (d *Display) emit(f Frame) {
	if d.render != nil {
		d.render(f)
	}
}
