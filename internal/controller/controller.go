// Package controller coordinates the operator-facing workflow: verse
// lookup and navigation, song selection, notes, settings and the
// broadcast channel. All mutable presentation state lives in one place
// here; nothing else writes it.
package controller

import (
	"strings"

	"github.com/eternallight/lumen/core/bible"
	"github.com/eternallight/lumen/core/broadcast"
	"github.com/eternallight/lumen/core/canon"
	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/core/refparse"
	"github.com/eternallight/lumen/core/songs"
	"github.com/eternallight/lumen/internal/bus"
	"github.com/eternallight/lumen/internal/datasets"
	"github.com/eternallight/lumen/internal/logging"
	"github.com/eternallight/lumen/internal/store"
)

// maxHistory bounds the recent-verse list.
const maxHistory = 15

// defaultSearchLimit bounds full-text search results.
const defaultSearchLimit = 50

// Controller owns the presentation state and serves operator commands.
// Methods are safe for one caller at a time; the HTTP layer serializes
// access.
type Controller struct {
	reg      *canon.Registry
	parser   *refparse.Parser
	resolver *bible.Resolver
	datasets *datasets.Manager
	store    *store.Store
	channel  *bus.Channel
	library  *songs.Library

	translation string

	currentVerse   *bible.ResolvedVerse
	currentSong    *songs.Song
	currentStanzas []songs.Stanza
	stanzaIndex    int

	currentSlides []string
	slideIndex    int

	history []store.HistoryEntry
}

// New assembles a controller. History is restored from the store.
func New(reg *canon.Registry, dm *datasets.Manager, st *store.Store,
	ch *bus.Channel, lib *songs.Library, translation string) (*Controller, error) {

	if !reg.HasTranslation(translation) {
		return nil, lumerr.NewNotFound("translation", translation)
	}

	c := &Controller{
		reg:         reg,
		parser:      refparse.New(reg),
		resolver:    bible.NewResolver(reg),
		datasets:    dm,
		store:       st,
		channel:     ch,
		library:     lib,
		translation: translation,
	}

	if st != nil {
		history, err := st.LoadHistory()
		if err != nil {
			return nil, lumerr.Wrap(err, "restoring history")
		}
		c.history = history
	}
	return c, nil
}

// Library returns the song library.
func (c *Controller) Library() *songs.Library {
	return c.library
}

// Translation returns the active translation code.
func (c *Controller) Translation() string {
	return c.translation
}

// CurrentVerse returns the selected verse, or nil.
func (c *Controller) CurrentVerse() *bible.ResolvedVerse {
	return c.currentVerse
}

// applyEdit overlays a stored manual edit onto a resolved verse. The
// overlay happens once, before the verse is previewed or broadcast.
func (c *Controller) applyEdit(v *bible.ResolvedVerse) {
	if v == nil || c.store == nil {
		return
	}
	if text, ok := c.store.GetEdit(v.Translation, v.BookTitle, v.Chapter, v.Verse); ok {
		v.Text = text
	}
}

// pushHistory records a verse at the head of the history, deduplicating
// consecutive lookups of the same reference and trimming to the bound.
func (c *Controller) pushHistory(v *bible.ResolvedVerse) {
	if len(c.history) > 0 && c.history[0].Reference == v.Reference {
		return
	}
	entry := store.HistoryEntry{Reference: v.Reference, Translation: v.Translation}
	c.history = append([]store.HistoryEntry{entry}, c.history...)
	if len(c.history) > maxHistory {
		c.history = c.history[:maxHistory]
	}
	if c.store != nil {
		if err := c.store.SaveHistory(c.history); err != nil {
			logging.Warn("failed to persist history", "error", err)
		}
	}
}

// History returns the recent verse references, most recent first.
func (c *Controller) History() []store.HistoryEntry {
	out := make([]store.HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// HandleQuery parses an operator query, resolves it in the active
// translation, overlays any manual edit and records it in the history.
// The resolved verse becomes the current selection.
func (c *Controller) HandleQuery(query string) (*bible.ResolvedVerse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, lumerr.NewValidation("query", "query is empty")
	}

	parsed, ok := c.parser.Parse(query)
	if !ok {
		return nil, lumerr.NewValidation("query", "could not parse reference: "+query)
	}

	ds, err := c.datasets.Get(c.translation)
	if err != nil {
		return nil, err
	}

	verse := c.resolver.FetchVerse(parsed, ds, c.translation)
	if verse == nil {
		return nil, lumerr.NewNotFound("verse", query)
	}

	c.applyEdit(verse)
	c.currentVerse = verse
	c.pushHistory(verse)
	return verse, nil
}

// Search runs a case-insensitive full-text search over the active
// translation. limit <= 0 applies the default bound.
func (c *Controller) Search(term string, limit int) ([]bible.ResolvedVerse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, lumerr.NewValidation("term", "search term is empty")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	ds, err := c.datasets.Get(c.translation)
	if err != nil {
		return nil, err
	}
	return c.resolver.FullTextSearch(term, ds, c.translation, limit), nil
}

// Select makes an already resolved verse (for example a search hit) the
// current selection, with the edit overlay applied.
func (c *Controller) Select(v bible.ResolvedVerse) *bible.ResolvedVerse {
	c.applyEdit(&v)
	c.currentVerse = &v
	c.pushHistory(&v)
	return &v
}

// SetTranslation switches the active translation and re-resolves the
// current verse in it via the canonical code. A verse missing from the
// new translation clears the selection but the switch still succeeds.
func (c *Controller) SetTranslation(translation string) (*bible.ResolvedVerse, error) {
	if !c.reg.HasTranslation(translation) {
		return nil, lumerr.NewNotFound("translation", translation)
	}
	c.translation = translation

	if c.currentVerse == nil {
		return nil, nil
	}

	ds, err := c.datasets.Get(translation)
	if err != nil {
		return nil, err
	}

	ref := &refparse.ParsedReference{
		Code:     c.currentVerse.Code,
		BookName: c.currentVerse.BookTitle,
		Chapter:  c.currentVerse.Chapter,
		Verse:    c.currentVerse.Verse,
	}
	verse := c.resolver.FetchVerse(ref, ds, translation)
	if verse == nil {
		c.currentVerse = nil
		return nil, nil
	}

	c.applyEdit(verse)
	c.currentVerse = verse
	c.pushHistory(verse)
	return verse, nil
}

// NextVerse advances the selection to the following verse, crossing
// chapter and book boundaries. At the end of the canon the selection is
// unchanged and nil is returned.
func (c *Controller) NextVerse() (*bible.ResolvedVerse, error) {
	return c.step(c.resolver.NextVerse)
}

// PrevVerse moves the selection to the preceding verse.
func (c *Controller) PrevVerse() (*bible.ResolvedVerse, error) {
	return c.step(c.resolver.PrevVerse)
}

func (c *Controller) step(move func(*bible.ResolvedVerse, *bible.Dataset, string) *bible.ResolvedVerse) (*bible.ResolvedVerse, error) {
	if c.currentVerse == nil {
		return nil, lumerr.NewValidation("verse", "no verse selected")
	}
	ds, err := c.datasets.Get(c.translation)
	if err != nil {
		return nil, err
	}

	verse := move(c.currentVerse, ds, c.translation)
	if verse == nil {
		return nil, nil
	}
	c.applyEdit(verse)
	c.currentVerse = verse
	return verse, nil
}

// BroadcastCurrent sends the current verse to the displays. The returned
// flag reports direct-path delivery.
func (c *Controller) BroadcastCurrent() (bool, error) {
	if c.currentVerse == nil {
		return false, lumerr.NewValidation("verse", "no verse selected")
	}
	delivered := c.channel.Send(broadcast.ShowVerse(c.currentVerse.Text, c.currentVerse.Reference))
	return delivered, nil
}

// Hide clears the displays back to idle.
func (c *Controller) Hide() bool {
	return c.channel.Send(broadcast.Hide())
}

// BroadcastNote sends free-form text. live marks keystroke mirroring,
// which displays render without fades.
func (c *Controller) BroadcastNote(text string, live bool) bool {
	return c.channel.Send(broadcast.ShowNote(text, live))
}

// SelectSong makes a song current and parses its stanzas, starting at
// the first.
func (c *Controller) SelectSong(id string) (*songs.Song, []songs.Stanza, error) {
	song, ok := c.library.Song(id)
	if !ok {
		return nil, nil, lumerr.NewNotFound("song", id)
	}
	stanzas := songs.ParseStanzas(song.Text)
	if len(stanzas) == 0 {
		return nil, nil, lumerr.NewValidation("song", "song has no stanzas")
	}

	c.currentSong = &song
	c.currentStanzas = stanzas
	c.stanzaIndex = 0
	return &song, stanzas, nil
}

// CurrentStanza returns the selected stanza position, or -1 when no song
// is selected.
func (c *Controller) CurrentStanza() int {
	if c.currentSong == nil {
		return -1
	}
	return c.stanzaIndex
}

// StepStanza moves the stanza cursor by delta, clamped to the song.
func (c *Controller) StepStanza(delta int) (songs.Stanza, error) {
	if c.currentSong == nil {
		return songs.Stanza{}, lumerr.NewValidation("song", "no song selected")
	}
	idx := c.stanzaIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.currentStanzas) {
		idx = len(c.currentStanzas) - 1
	}
	c.stanzaIndex = idx
	return c.currentStanzas[idx], nil
}

// BroadcastStanza sends the current stanza of the current song.
func (c *Controller) BroadcastStanza() (bool, error) {
	if c.currentSong == nil {
		return false, lumerr.NewValidation("song", "no song selected")
	}
	stanza := c.currentStanzas[c.stanzaIndex]
	delivered := c.channel.Send(broadcast.ShowSong(broadcast.SongPayload{
		Title:       c.currentSong.Title,
		Number:      c.currentSong.Number,
		Text:        stanza.Text,
		StanzaLabel: stanza.Label,
		StanzaIndex: c.stanzaIndex + 1,
		StanzaTotal: len(c.currentStanzas),
	}))
	return delivered, nil
}

// UpdateSettings merges a partial settings update, persists the result
// and re-broadcasts it to the displays.
func (c *Controller) UpdateSettings(p broadcast.SettingsPayload) error {
	if c.store != nil {
		settings, err := c.store.LoadSettings()
		if err != nil {
			return err
		}
		if p.Font != nil {
			settings.Font = *p.Font
		}
		if p.Theme != nil {
			settings.Theme = *p.Theme
		}
		if p.TextColor != nil {
			settings.TextColor = *p.TextColor
		}
		if p.Size != nil {
			settings.Size = *p.Size
		}
		if err := c.store.SaveSettings(settings); err != nil {
			return err
		}
	}
	c.channel.Send(broadcast.UpdateSettings(p))
	return nil
}

// SetBackground broadcasts a background image change. An empty data URL
// clears the custom background.
func (c *Controller) SetBackground(dataURL string) bool {
	return c.channel.Send(broadcast.SetBackground(dataURL))
}

// SelectPresentation makes a presentation's slides current, starting at
// the first slide.
func (c *Controller) SelectPresentation(id string) (*store.Presentation, error) {
	if c.store == nil {
		return nil, lumerr.NewValidation("presentation", "no presentation store configured")
	}
	p, err := c.store.GetPresentation(id)
	if err != nil {
		return nil, err
	}
	if p.Deleted {
		return nil, lumerr.NewNotFound("presentation", id)
	}
	if len(p.Slides) == 0 {
		return nil, lumerr.NewValidation("presentation", "presentation has no slides")
	}

	c.currentSlides = p.Slides
	c.slideIndex = 0
	return &p, nil
}

// CurrentSlide returns the selected slide position, or -1 when no
// presentation is selected.
func (c *Controller) CurrentSlide() int {
	if len(c.currentSlides) == 0 {
		return -1
	}
	return c.slideIndex
}

// StepSlide moves the slide cursor by delta, clamped to the deck, and
// returns the digest of the slide it lands on.
func (c *Controller) StepSlide(delta int) (string, error) {
	if len(c.currentSlides) == 0 {
		return "", lumerr.NewValidation("presentation", "no presentation selected")
	}
	idx := c.slideIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.currentSlides) {
		idx = len(c.currentSlides) - 1
	}
	c.slideIndex = idx
	return c.currentSlides[idx], nil
}

// BroadcastSlide sends the current slide. Displays fetch the image
// through the blob endpoint by its digest.
func (c *Controller) BroadcastSlide() (bool, error) {
	if len(c.currentSlides) == 0 {
		return false, lumerr.NewValidation("presentation", "no presentation selected")
	}
	digest := c.currentSlides[c.slideIndex]
	delivered := c.channel.Send(broadcast.ShowSlide(broadcast.SlidePayload{
		ImageURL: "/api/blobs/" + digest,
	}))
	return delivered, nil
}

// SetEdit stores a manual edit for a verse of the active translation and
// overlays it onto the current selection when it matches.
func (c *Controller) SetEdit(book, chapter, verse, text string) error {
	if c.store == nil {
		return lumerr.NewValidation("edit", "no edit store configured")
	}
	if book == "" || chapter == "" || verse == "" {
		return lumerr.NewValidation("edit", "book, chapter and verse are required")
	}
	if strings.TrimSpace(text) == "" {
		return lumerr.NewValidation("edit", "edit text is empty")
	}
	if err := c.store.SetEdit(c.translation, book, chapter, verse, text); err != nil {
		return err
	}
	if v := c.currentVerse; v != nil && v.BookTitle == book && v.Chapter == chapter && v.Verse == verse {
		v.Text = text
	}
	return nil
}

// RemoveEdit deletes a manual edit. A matching current selection is
// re-resolved so the dataset text shows again.
func (c *Controller) RemoveEdit(book, chapter, verse string) error {
	if c.store == nil {
		return lumerr.NewValidation("edit", "no edit store configured")
	}
	if err := c.store.DeleteEdit(c.translation, book, chapter, verse); err != nil {
		return err
	}

	v := c.currentVerse
	if v == nil || v.BookTitle != book || v.Chapter != chapter || v.Verse != verse {
		return nil
	}
	ds, err := c.datasets.Get(c.translation)
	if err != nil {
		return nil
	}
	ref := &refparse.ParsedReference{
		Code:     v.Code,
		BookName: v.BookTitle,
		Chapter:  v.Chapter,
		Verse:    v.Verse,
	}
	if fresh := c.resolver.FetchVerse(ref, ds, c.translation); fresh != nil {
		c.currentVerse = fresh
	}
	return nil
}
