package display

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eternallight/lumen/core/broadcast"
)

// frameRecorder collects every emitted frame.
type frameRecorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *frameRecorder) render(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *frameRecorder) last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

func newTestDisplay(opts ...Option) (*Display, *frameRecorder) {
	rec := &frameRecorder{}
	opts = append([]Option{WithSettleDelays(time.Millisecond, time.Millisecond)}, opts...)
	return New(rec.render, opts...), rec
}

// settle waits long enough for pending settle timers to fire.
func settle() { time.Sleep(30 * time.Millisecond) }

func TestShowVerseTransition(t *testing.T) {
	d, rec := newTestDisplay()

	d.Apply(broadcast.ShowVerse("Ибо так возлюбил Бог мир.", "Ин 3:16"))

	// The fade-out frame comes first.
	if f, ok := rec.last(); !ok || f.Visible {
		t.Fatal("expected an immediate invisible frame")
	}

	settle()
	if d.Mode() != ModeVerse {
		t.Fatalf("mode = %q, want verse", d.Mode())
	}
	f := d.Frame()
	if !f.Visible || f.Reference != "Ин 3:16" {
		t.Errorf("frame = %+v", f)
	}
}

func TestHideReturnsToIdle(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	settle()

	d.Apply(broadcast.Hide())
	settle()

	if d.Mode() != ModeIdle {
		t.Errorf("mode = %q, want idle", d.Mode())
	}
	if f := d.Frame(); f.Text != "" {
		t.Error("idle frame should carry no content")
	}
}

func TestHideThenShowYieldsNewContent(t *testing.T) {
	// Production ordering: the hide settle is longer than the show
	// settle, so the stale hide callback fires after the new verse is
	// already installed. It must not wipe it.
	d, _ := newTestDisplay(WithSettleDelays(10*time.Millisecond, 20*time.Millisecond))
	d.Apply(broadcast.ShowVerse("старый", "Быт 1:1"))
	time.Sleep(40 * time.Millisecond)

	d.Apply(broadcast.Hide())
	d.Apply(broadcast.ShowVerse("новый", "Исх 3:14"))
	time.Sleep(60 * time.Millisecond)

	if d.Mode() != ModeVerse {
		t.Fatalf("mode = %q, want verse", d.Mode())
	}
	if f := d.Frame(); f.Text != "новый" || f.Reference != "Исх 3:14" {
		t.Errorf("frame = %+v, want the newer verse", f)
	}
}

func TestStaleHideDoesNotWipeLiveNote(t *testing.T) {
	d, _ := newTestDisplay(WithSettleDelays(5*time.Millisecond, 15*time.Millisecond))
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	time.Sleep(30 * time.Millisecond)

	d.Apply(broadcast.Hide())
	d.Apply(broadcast.ShowNote("объявление", true))
	time.Sleep(40 * time.Millisecond)

	if d.Mode() != ModeNote {
		t.Fatalf("mode = %q, want note", d.Mode())
	}
	if f := d.Frame(); f.Text != "объявление" {
		t.Errorf("frame = %+v", f)
	}
}

func TestShowThenHideEndsIdle(t *testing.T) {
	// The opposite order still hides: the show settle fires first, the
	// hide is the latest change and completes.
	d, _ := newTestDisplay(WithSettleDelays(5*time.Millisecond, 15*time.Millisecond))
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	d.Apply(broadcast.Hide())
	time.Sleep(40 * time.Millisecond)

	if d.Mode() != ModeIdle {
		t.Errorf("mode = %q, want idle", d.Mode())
	}
}

func TestLiveNoteBypassesFade(t *testing.T) {
	d, rec := newTestDisplay(WithSettleDelays(time.Hour, time.Hour))

	d.Apply(broadcast.ShowNote("наб", true))

	// No timers involved: mode and frame change synchronously.
	if d.Mode() != ModeNote {
		t.Fatalf("mode = %q, want note", d.Mode())
	}
	f, ok := rec.last()
	if !ok || !f.Visible || f.Text != "наб" {
		t.Errorf("frame = %+v", f)
	}
	if !f.PreWrap {
		t.Error("notes should render pre-wrapped")
	}
}

func TestEmptyLiveNoteClearsImmediately(t *testing.T) {
	d, _ := newTestDisplay(WithSettleDelays(time.Hour, time.Hour))

	d.Apply(broadcast.ShowNote("черновик", true))
	d.Apply(broadcast.ShowNote("", true))

	if d.Mode() != ModeIdle {
		t.Errorf("mode = %q, want idle", d.Mode())
	}
	if f := d.Frame(); f.Text != "" || f.Mode != ModeIdle {
		t.Errorf("frame = %+v", f)
	}
}

func TestEmptyContentIgnored(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	settle()

	d.Apply(broadcast.ShowVerse("", ""))
	d.Apply(broadcast.ShowSong(broadcast.SongPayload{Title: "x"}))
	d.Apply(broadcast.Message{Kind: broadcast.KindShowSlide, Slide: &broadcast.SlidePayload{}})
	settle()

	if d.Mode() != ModeVerse {
		t.Errorf("blank content should not change mode, got %q", d.Mode())
	}
}

func TestVerseSizeBands(t *testing.T) {
	cases := []struct {
		runes int
		want  SizeBand
	}{
		{80, BandLarge},
		{151, BandMedium},
		{301, BandSmall},
	}
	for _, tc := range cases {
		text := strings.Repeat("я", tc.runes)
		if got := verseBand(text); got != tc.want {
			t.Errorf("verseBand(%d runes) = %v, want %v", tc.runes, got, tc.want)
		}
	}
}

func TestSongSizeBandsAndLayout(t *testing.T) {
	if got := songBand(strings.Repeat("я", 101)); got != BandMedium {
		t.Errorf("songBand(101) = %v", got)
	}
	if got := songBand(strings.Repeat("я", 201)); got != BandSmall {
		t.Errorf("songBand(201) = %v", got)
	}

	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowSong(broadcast.SongPayload{Title: "Гимн", Text: "строка"}))
	settle()

	f := d.Frame()
	if !f.Centered {
		t.Error("song stanza should center")
	}
	if f.Reference != "" {
		t.Error("song mode suppresses the reference")
	}
}

func TestSlideMode(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowSlide(broadcast.SlidePayload{ImageURL: "/slides/abc"}))
	settle()

	if d.Mode() != ModeSlide {
		t.Fatalf("mode = %q", d.Mode())
	}
	if f := d.Frame(); f.SlideURL != "/slides/abc" || f.Text != "" {
		t.Errorf("frame = %+v", f)
	}
}

func TestSlideReplacedOnNextShow(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowSlide(broadcast.SlidePayload{ImageData: "AAAA"}))
	settle()
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	settle()

	if f := d.Frame(); f.SlideData != "" || f.SlideURL != "" {
		t.Error("prior slide surface should be dropped on transition")
	}
}

func TestSettingsDoNotChangeMode(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.ShowVerse("текст", "Быт 1:1"))
	settle()

	size := 120
	d.Apply(broadcast.UpdateSettings(broadcast.SettingsPayload{Size: &size}))

	if d.Mode() != ModeVerse {
		t.Errorf("settings update changed mode to %q", d.Mode())
	}
	if f := d.Frame(); f.Settings.Size != 120 {
		t.Errorf("size = %d, want 120", f.Settings.Size)
	}
}

func TestSettingsPartialMerge(t *testing.T) {
	d, _ := newTestDisplay()
	theme := "forest"
	d.Apply(broadcast.UpdateSettings(broadcast.SettingsPayload{Theme: &theme}))

	f := d.Frame()
	if f.Settings.Theme != "forest" {
		t.Errorf("theme = %q", f.Settings.Theme)
	}
	if f.Settings.Font != DefaultSettings().Font {
		t.Error("unset fields should keep their previous value")
	}
	if f.BackgroundColor != "#052e16" || f.AccentColor != "#86efac" {
		t.Errorf("resolved colors = %q/%q", f.BackgroundColor, f.AccentColor)
	}
}

func TestThemeResolve(t *testing.T) {
	cases := []struct {
		theme      string
		background string
		accent     string
	}{
		{"blue", "#0f172a", "#d4af37"},
		{"black", "#000000", "#ffffff"},
		{"forest", "#052e16", "#86efac"},
		{"#112233", "#112233", "#d4af37"},
		{"neon", "#0f172a", "#d4af37"},
	}
	for _, tc := range cases {
		s := Settings{Theme: tc.theme}
		bg, accent := s.Resolve()
		if bg != tc.background || accent != tc.accent {
			t.Errorf("Resolve(%q) = %q/%q, want %q/%q", tc.theme, bg, accent, tc.background, tc.accent)
		}
	}
}

func TestSetBackground(t *testing.T) {
	d, _ := newTestDisplay()
	d.Apply(broadcast.SetBackground("data:image/png;base64,AAAA"))

	if f := d.Frame(); f.BackgroundImage == "" {
		t.Error("background image not applied")
	}
	d.Apply(broadcast.SetBackground(""))
	if f := d.Frame(); f.BackgroundImage != "" {
		t.Error("empty data URL should clear the background")
	}
}
