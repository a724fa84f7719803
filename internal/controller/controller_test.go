package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/eternallight/lumen/core/broadcast"
	"github.com/eternallight/lumen/core/canon"
	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/core/songs"
	"github.com/eternallight/lumen/internal/bus"
	"github.com/eternallight/lumen/internal/datasets"
	"github.com/eternallight/lumen/internal/store"
)

// testDataset builds a minimal RST-shaped dataset file.
func writeDataset(t *testing.T, dir, name string, books ...map[string]any) {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"Books": books})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

func book(id int, name string, chapters ...map[string]any) map[string]any {
	return map[string]any{"BookId": id, "BookName": name, "Chapters": chapters}
}

func chapter(id int, verses ...string) map[string]any {
	vs := make([]map[string]any, len(verses))
	for i, text := range verses {
		vs[i] = map[string]any{"VerseId": i + 1, "Text": text}
	}
	return map[string]any{"ChapterId": id, "Verses": vs}
}

type fixture struct {
	c  *Controller
	st *store.Store
	ch *bus.Channel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	writeDataset(t, dir, "rst.json",
		book(1, "Бытие",
			chapter(1, "В начале сотворил Бог небо и землю.", "Земля же была безвидна и пуста."),
			chapter(2, "Так совершены небо и земля.")),
		book(43, "От Иоанна",
			chapter(3, "стих один", "стих два", "Ибо так возлюбил Бог мир.")),
	)
	writeDataset(t, dir, "nrt.json",
		book(1, "Начало",
			chapter(1, "В начале Бог сотворил небо и землю.", "Земля была пуста.")),
	)

	reg := canon.NewRegistry()
	dm := datasets.NewManager(dir, reg)

	st, err := store.Open(filepath.Join(t.TempDir(), "lumen.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	hub := bus.NewHub()
	go hub.Run()
	ch := bus.NewChannel(hub)

	lib, err := songs.NewLibrary(nil, st)
	if err != nil {
		t.Fatal(err)
	}

	c, err := New(reg, dm, st, ch, lib, "RST")
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{c: c, st: st, ch: ch}
}

func TestHandleQuery(t *testing.T) {
	f := newFixture(t)

	v, err := f.c.HandleQuery("Бытие 1:2")
	if err != nil {
		t.Fatalf("HandleQuery: %v", err)
	}
	if v.Reference != "Бытие 1:2" {
		t.Errorf("reference = %q", v.Reference)
	}
	if f.c.CurrentVerse() == nil {
		t.Error("current verse not set")
	}
}

func TestHandleQueryErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.HandleQuery(""); !lumerr.Is(err, lumerr.ErrInvalidInput) {
		t.Errorf("empty query: %v", err)
	}
	if _, err := f.c.HandleQuery("plugh"); !lumerr.Is(err, lumerr.ErrInvalidInput) {
		t.Errorf("unparsable query: %v", err)
	}
	if _, err := f.c.HandleQuery("Бытие 99:1"); !lumerr.Is(err, lumerr.ErrNotFound) {
		t.Errorf("missing chapter: %v", err)
	}
}

func TestHandleQueryAppliesEdit(t *testing.T) {
	f := newFixture(t)

	if err := f.st.SetEdit("RST", "Бытие", "1", "1", "исправленный текст"); err != nil {
		t.Fatal(err)
	}
	v, err := f.c.HandleQuery("Бытие 1:1")
	if err != nil {
		t.Fatal(err)
	}
	if v.Text != "исправленный текст" {
		t.Errorf("text = %q, want the manual edit", v.Text)
	}
}

func TestHistoryDedupAndBound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}
	if got := f.c.History(); len(got) != 1 {
		t.Errorf("consecutive duplicates should collapse, got %d entries", len(got))
	}

	if _, err := f.c.HandleQuery("Бытие 1:2"); err != nil {
		t.Fatal(err)
	}
	history := f.c.History()
	if len(history) != 2 || history[0].Reference != "Бытие 1:2" {
		t.Errorf("history = %v", history)
	}

	// History survives a controller restart via the store.
	reg := canon.NewRegistry()
	c2, err := New(reg, datasets.NewManager(t.TempDir(), reg), f.st, f.ch, nil, "RST")
	if err != nil {
		t.Fatal(err)
	}
	if got := c2.History(); len(got) != 2 {
		t.Errorf("restored history has %d entries", len(got))
	}
}

func TestNextPrevVerse(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}

	v, err := f.c.NextVerse()
	if err != nil {
		t.Fatal(err)
	}
	if v.Verse != "2" {
		t.Errorf("next = %q", v.Reference)
	}

	// Crossing into chapter 2.
	v, err = f.c.NextVerse()
	if err != nil {
		t.Fatal(err)
	}
	if v.Chapter != "2" || v.Verse != "1" {
		t.Errorf("chapter crossing: %q", v.Reference)
	}

	v, err = f.c.PrevVerse()
	if err != nil {
		t.Fatal(err)
	}
	if v.Chapter != "1" || v.Verse != "2" {
		t.Errorf("prev: %q", v.Reference)
	}
}

func TestNextVerseAppliesEdit(t *testing.T) {
	f := newFixture(t)
	if err := f.st.SetEdit("RST", "Бытие", "1", "2", "правка"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}
	v, err := f.c.NextVerse()
	if err != nil {
		t.Fatal(err)
	}
	if v.Text != "правка" {
		t.Errorf("text = %q", v.Text)
	}
}

func TestSetTranslationReResolves(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}
	v, err := f.c.SetTranslation("NRT")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil {
		t.Fatal("verse should resolve in NRT")
	}
	if v.Translation != "NRT" || v.BookTitle != "Начало" {
		t.Errorf("got %+v", v)
	}
	if f.c.Translation() != "NRT" {
		t.Errorf("translation = %q", f.c.Translation())
	}
}

func TestSetTranslationMissingVerse(t *testing.T) {
	f := newFixture(t)

	// John exists only in RST here.
	if _, err := f.c.HandleQuery("Ин 3:16"); err != nil {
		t.Fatal(err)
	}
	v, err := f.c.SetTranslation("NRT")
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("got %+v, want nil", v)
	}
	if f.c.CurrentVerse() != nil {
		t.Error("selection should clear when the verse is missing")
	}
	if f.c.Translation() != "NRT" {
		t.Error("switch itself should still succeed")
	}
}

func TestSetTranslationUnknown(t *testing.T) {
	f := newFixture(t)
	if _, err := f.c.SetTranslation("KJV"); !lumerr.Is(err, lumerr.ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	hits, err := f.c.Search("возлюбил", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Code != "JHN" {
		t.Errorf("hits = %v", hits)
	}

	if _, err := f.c.Search("  ", 0); err == nil {
		t.Error("blank term should fail")
	}
}

func TestBroadcastCurrent(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.BroadcastCurrent(); err == nil {
		t.Error("broadcast without selection should fail")
	}

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}
	sink := &captureSink{}
	f.ch.AttachDisplay(sink)

	delivered, err := f.c.BroadcastCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if !delivered {
		t.Error("direct path should report delivered")
	}
	if len(sink.messages) != 1 || sink.messages[0].Kind != broadcast.KindShowVerse {
		t.Errorf("sink = %v", sink.messages)
	}
}

func TestSongWorkflow(t *testing.T) {
	f := newFixture(t)

	lib := f.c.library
	song, err := lib.Save(songs.Song{Number: 5, Title: "Гимн", Text: "Куплет один\n\nПрипев здесь\n\nКуплет два\n\nПрипев здесь"})
	if err != nil {
		t.Fatal(err)
	}

	_, stanzas, err := f.c.SelectSong(song.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stanzas) != 4 {
		t.Fatalf("got %d stanzas", len(stanzas))
	}
	if f.c.CurrentStanza() != 0 {
		t.Errorf("initial stanza = %d", f.c.CurrentStanza())
	}

	if _, err := f.c.StepStanza(1); err != nil {
		t.Fatal(err)
	}
	// Clamped at the last stanza.
	if _, err := f.c.StepStanza(10); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentStanza() != 3 {
		t.Errorf("stanza = %d, want 3", f.c.CurrentStanza())
	}

	sink := &captureSink{}
	f.ch.AttachDisplay(sink)
	if _, err := f.c.BroadcastStanza(); err != nil {
		t.Fatal(err)
	}
	m := sink.messages[0]
	if m.Kind != broadcast.KindShowSong || m.Song.StanzaIndex != 4 || m.Song.StanzaTotal != 4 {
		t.Errorf("message = %+v", m.Song)
	}
	if m.Song.StanzaLabel != "Припев" {
		t.Errorf("label = %q", m.Song.StanzaLabel)
	}
}

func TestSelectSongErrors(t *testing.T) {
	f := newFixture(t)
	if _, _, err := f.c.SelectSong("missing"); !lumerr.Is(err, lumerr.ErrNotFound) {
		t.Errorf("got %v", err)
	}
	if _, err := f.c.StepStanza(1); err == nil {
		t.Error("stanza step without song should fail")
	}
}

func TestUpdateSettingsPersists(t *testing.T) {
	f := newFixture(t)

	theme := "forest"
	if err := f.c.UpdateSettings(broadcast.SettingsPayload{Theme: &theme}); err != nil {
		t.Fatal(err)
	}

	settings, err := f.st.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Theme != "forest" {
		t.Errorf("theme = %q", settings.Theme)
	}
	if settings.Size != 100 {
		t.Error("unset fields should keep defaults")
	}
}

// testDigestPad pads two-character prefixes up to digest length.
const testDigestPad = "00000000000000000000000000000000000000000000000000000000000000"

// captureSink records direct-path deliveries.
type captureSink struct {
	messages []broadcast.Message
}

func (s *captureSink) Deliver(m broadcast.Message) error {
	s.messages = append(s.messages, m)
	return nil
}

func (s *captureSink) Alive() bool { return true }

func TestSlideWorkflow(t *testing.T) {
	f := newFixture(t)

	digests := []string{
		"aa" + testDigestPad, "bb" + testDigestPad, "cc" + testDigestPad,
	}
	p, err := f.st.CreatePresentation("Проповедь", digests)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.c.BroadcastSlide(); err == nil {
		t.Error("broadcast without a presentation should fail")
	}
	if f.c.CurrentSlide() != -1 {
		t.Errorf("initial slide = %d, want -1", f.c.CurrentSlide())
	}

	if _, err := f.c.SelectPresentation(p.ID); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentSlide() != 0 {
		t.Errorf("slide = %d, want 0", f.c.CurrentSlide())
	}

	if _, err := f.c.StepSlide(1); err != nil {
		t.Fatal(err)
	}
	// Clamped at the deck edges.
	if _, err := f.c.StepSlide(10); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentSlide() != 2 {
		t.Errorf("slide = %d, want 2", f.c.CurrentSlide())
	}
	if _, err := f.c.StepSlide(-10); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentSlide() != 0 {
		t.Errorf("slide = %d, want 0", f.c.CurrentSlide())
	}

	sink := &captureSink{}
	f.ch.AttachDisplay(sink)
	if _, err := f.c.BroadcastSlide(); err != nil {
		t.Fatal(err)
	}
	m := sink.messages[0]
	if m.Kind != broadcast.KindShowSlide || m.Slide.ImageURL != "/api/blobs/"+digests[0] {
		t.Errorf("message = %+v", m.Slide)
	}
}

func TestSelectPresentationErrors(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.SelectPresentation("missing"); !lumerr.Is(err, lumerr.ErrNotFound) {
		t.Errorf("unknown presentation: err = %v", err)
	}

	empty, err := f.st.CreatePresentation("Пустая", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.c.SelectPresentation(empty.ID); !lumerr.Is(err, lumerr.ErrInvalidInput) {
		t.Errorf("empty presentation: err = %v", err)
	}

	deleted, err := f.st.CreatePresentation("Удалённая", []string{"dd" + testDigestPad})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.st.DeletePresentation(deleted.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.c.SelectPresentation(deleted.ID); !lumerr.Is(err, lumerr.ErrNotFound) {
		t.Errorf("deleted presentation: err = %v", err)
	}
}

func TestSetEditUpdatesCurrentVerse(t *testing.T) {
	f := newFixture(t)

	if _, err := f.c.HandleQuery("Бытие 1:1"); err != nil {
		t.Fatal(err)
	}

	if err := f.c.SetEdit("Бытие", "1", "1", "исправленный текст"); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentVerse().Text != "исправленный текст" {
		t.Errorf("text = %q", f.c.CurrentVerse().Text)
	}

	// The edit survives a fresh lookup.
	v, err := f.c.HandleQuery("Бытие 1:1")
	if err != nil {
		t.Fatal(err)
	}
	if v.Text != "исправленный текст" {
		t.Errorf("text after lookup = %q", v.Text)
	}

	if err := f.c.RemoveEdit("Бытие", "1", "1"); err != nil {
		t.Fatal(err)
	}
	if f.c.CurrentVerse().Text != "В начале сотворил Бог небо и землю." {
		t.Errorf("text after removal = %q", f.c.CurrentVerse().Text)
	}
}

func TestSetEditValidation(t *testing.T) {
	f := newFixture(t)

	if err := f.c.SetEdit("", "1", "1", "текст"); !lumerr.Is(err, lumerr.ErrInvalidInput) {
		t.Errorf("missing book: err = %v", err)
	}
	if err := f.c.SetEdit("Бытие", "1", "1", "  "); !lumerr.Is(err, lumerr.ErrInvalidInput) {
		t.Errorf("blank text: err = %v", err)
	}
}
