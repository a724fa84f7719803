package bible

import (
	"testing"

	"github.com/eternallight/lumen/core/canon"
	"github.com/eternallight/lumen/core/refparse"
)

// testDataset builds a tiny three-book RST-numbered dataset:
// Genesis (1) with two chapters, Exodus (2) with one, Revelation (66) with one.
func testDataset() *Dataset {
	return &Dataset{
		Books: []DatasetBook{
			{
				BookID: 1,
				Chapters: []Chapter{
					{ChapterID: 1, Verses: []Verse{
						{VerseID: 1, Text: "В начале сотворил Бог небо и землю."},
						{VerseID: 2, Text: "Земля же была безвидна и пуста."},
						{VerseID: 3, Text: "И сказал Бог: да будет свет."},
					}},
					{ChapterID: 2, Verses: []Verse{
						{VerseID: 1, Text: "Так совершены небо и земля."},
						{VerseID: 2, Text: "И совершил Бог к седьмому дню дела Свои."},
					}},
				},
			},
			{
				BookID: 2,
				Chapters: []Chapter{
					{ChapterID: 1, Verses: []Verse{
						{VerseID: 1, Text: "Вот имена сынов Израилевых."},
					}},
				},
			},
			{
				BookID: 66,
				Chapters: []Chapter{
					{ChapterID: 22, Verses: []Verse{
						{VerseID: 20, Text: "Ей, гряду скоро!"},
						{VerseID: 21, Text: "Благодать Господа нашего Иисуса Христа со всеми вами. Аминь."},
					}},
				},
			},
		},
	}
}

// ktbDataset numbers Romans 52 per KTB's book order.
func ktbDataset() *Dataset {
	return &Dataset{
		Books: []DatasetBook{
			{
				BookID: 52,
				Chapters: []Chapter{
					{ChapterID: 1, Verses: []Verse{
						{VerseID: 1, Text: "Иса Мәсіхтің құлы Пауылдан."},
					}},
				},
			},
		},
	}
}

func newResolver() (*Resolver, *refparse.Parser, *canon.Registry) {
	reg := canon.NewRegistry()
	return NewResolver(reg), refparse.New(reg), reg
}

func TestFetchVerseSingle(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	ref, ok := p.Parse("быт 1:3")
	if !ok {
		t.Fatal("parse failed")
	}

	v := r.FetchVerse(ref, ds, "RST")
	if v == nil {
		t.Fatal("FetchVerse returned nil")
	}
	if v.Text != "И сказал Бог: да будет свет." {
		t.Errorf("text = %q", v.Text)
	}
	if v.Reference != "Бытие 1:3" {
		t.Errorf("reference = %q", v.Reference)
	}
	if v.Code != "GEN" || v.BookID != 1 || v.Translation != "RST" {
		t.Errorf("metadata = %+v", v)
	}
}

func TestFetchVerseRange(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	ref, ok := p.Parse("быт 1 1-2")
	if !ok {
		t.Fatal("parse failed")
	}

	v := r.FetchVerse(ref, ds, "RST")
	if v == nil {
		t.Fatal("FetchVerse returned nil")
	}
	want := "В начале сотворил Бог небо и землю. Земля же была безвидна и пуста."
	if v.Text != want {
		t.Errorf("text = %q, want %q", v.Text, want)
	}
	// The specifier string survives in the label.
	if v.Reference != "Бытие 1:1-2" {
		t.Errorf("reference = %q", v.Reference)
	}
	if v.Verse != "1-2" {
		t.Errorf("verse spec = %q", v.Verse)
	}
}

func TestFetchVerseCommaList(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	ref := &refparse.ParsedReference{Code: "GEN", Chapter: "1", Verse: "1,3"}
	v := r.FetchVerse(ref, ds, "RST")
	if v == nil {
		t.Fatal("FetchVerse returned nil")
	}
	want := "В начале сотворил Бог небо и землю. И сказал Бог: да будет свет."
	if v.Text != want {
		t.Errorf("text = %q, want %q", v.Text, want)
	}
}

func TestFetchVerseFailures(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	tests := []struct {
		name string
		ref  *refparse.ParsedReference
		ds   *Dataset
	}{
		{"nil dataset", &refparse.ParsedReference{Code: "GEN", Chapter: "1", Verse: "1"}, nil},
		{"book absent from dataset", &refparse.ParsedReference{Code: "PSA", Chapter: "22", Verse: "1"}, ds},
		{"chapter absent", &refparse.ParsedReference{Code: "GEN", Chapter: "50", Verse: "1"}, ds},
		{"verse absent", &refparse.ParsedReference{Code: "GEN", Chapter: "1", Verse: "99"}, ds},
		{"empty range", &refparse.ParsedReference{Code: "GEN", Chapter: "1", Verse: "90-99"}, ds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := r.FetchVerse(tt.ref, tt.ds, "RST"); v != nil {
				t.Errorf("expected nil, got %+v", v)
			}
		})
	}
}

func TestFetchVerseUsesTranslationBookIDs(t *testing.T) {
	r, _, _ := newResolver()

	// ROM resolves via KTB's book ID 52, not RST's 45 - the canonical layer,
	// not raw numeric IDs, drives cross-translation lookup.
	ref := &refparse.ParsedReference{Code: "ROM", Chapter: "1", Verse: "1"}
	v := r.FetchVerse(ref, ktbDataset(), "KTB")
	if v == nil {
		t.Fatal("FetchVerse returned nil for KTB Romans")
	}
	if v.BookID != 52 {
		t.Errorf("BookID = %d, want 52", v.BookID)
	}
	if v.BookTitle != "Римдіктерге" {
		t.Errorf("BookTitle = %q, want Kazakh title", v.BookTitle)
	}

	// The same reference must not resolve against RST numbering in this dataset.
	if v := r.FetchVerse(ref, ktbDataset(), "RST"); v != nil {
		t.Errorf("RST lookup in KTB-numbered dataset should fail, got %+v", v)
	}
}

func TestFullTextSearch(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	results := r.FullTextSearch("Бог", ds, "RST", 10)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Canonical order: Gen 1:1, Gen 1:3, Gen 2:2.
	if results[0].Reference != "Бытие 1:1" || results[1].Reference != "Бытие 1:3" || results[2].Reference != "Бытие 2:2" {
		t.Errorf("unexpected order: %s, %s, %s", results[0].Reference, results[1].Reference, results[2].Reference)
	}
}

func TestFullTextSearchLimit(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	results := r.FullTextSearch("и", ds, "RST", 2)
	if len(results) > 2 {
		t.Errorf("got %d results, want at most 2", len(results))
	}
}

func TestFullTextSearchCaseInsensitive(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	upper := r.FullTextSearch("БОГ", ds, "RST", 10)
	lower := r.FullTextSearch("бог", ds, "RST", 10)
	if len(upper) != len(lower) || len(upper) == 0 {
		t.Errorf("case sensitivity: upper=%d lower=%d", len(upper), len(lower))
	}
}

func TestNextVerseWithinChapter(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	cur := r.FetchVerse(mustParse(t, p, "быт 1:1"), ds, "RST")
	next := r.NextVerse(cur, ds, "RST")
	if next == nil {
		t.Fatal("NextVerse returned nil")
	}
	if next.Reference != "Бытие 1:2" {
		t.Errorf("reference = %q", next.Reference)
	}
}

func TestNextVerseCrossesChapter(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	cur := r.FetchVerse(mustParse(t, p, "быт 1:3"), ds, "RST")
	next := r.NextVerse(cur, ds, "RST")
	if next == nil {
		t.Fatal("NextVerse returned nil")
	}
	if next.Reference != "Бытие 2:1" {
		t.Errorf("reference = %q", next.Reference)
	}
}

func TestNextVerseCrossesBook(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	cur := r.FetchVerse(mustParse(t, p, "быт 2:2"), ds, "RST")
	next := r.NextVerse(cur, ds, "RST")
	if next == nil {
		t.Fatal("NextVerse returned nil")
	}
	if next.Code != "EXO" {
		t.Errorf("code = %s, want EXO (canonical code recomputed across book boundary)", next.Code)
	}
	if next.Reference != "Исход 1:1" {
		t.Errorf("reference = %q", next.Reference)
	}
}

func TestNextVerseAtCanonEnd(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	cur := &ResolvedVerse{Code: "REV", BookID: 66, Chapter: "22", Verse: "21", Translation: "RST"}
	if next := r.NextVerse(cur, ds, "RST"); next != nil {
		t.Errorf("NextVerse at end of canon = %+v, want nil", next)
	}
}

func TestPrevVerseAtCanonStart(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	cur := r.FetchVerse(mustParse(t, p, "быт 1:1"), ds, "RST")
	if prev := r.PrevVerse(cur, ds, "RST"); prev != nil {
		t.Errorf("PrevVerse at Genesis 1:1 = %+v, want nil", prev)
	}
}

func TestPrevVerseCrossesBookBackwards(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	cur := r.FetchVerse(mustParse(t, p, "исх 1:1"), ds, "RST")
	prev := r.PrevVerse(cur, ds, "RST")
	if prev == nil {
		t.Fatal("PrevVerse returned nil")
	}
	if prev.Reference != "Бытие 2:2" {
		t.Errorf("reference = %q", prev.Reference)
	}
}

func TestNextPrevRoundTrip(t *testing.T) {
	r, p, _ := newResolver()
	ds := testDataset()

	// For any interior verse, prev(next(v)) == v.
	cur := r.FetchVerse(mustParse(t, p, "быт 1:2"), ds, "RST")
	back := r.PrevVerse(r.NextVerse(cur, ds, "RST"), ds, "RST")
	if back == nil {
		t.Fatal("round trip returned nil")
	}
	if back.Reference != cur.Reference {
		t.Errorf("round trip: got %q, want %q", back.Reference, cur.Reference)
	}
}

func TestNextVerseRangePivotsOnStart(t *testing.T) {
	r, _, _ := newResolver()
	ds := testDataset()

	cur := &ResolvedVerse{Code: "GEN", BookID: 1, Chapter: "1", Verse: "1-2", Translation: "RST"}
	next := r.NextVerse(cur, ds, "RST")
	if next == nil {
		t.Fatal("NextVerse returned nil")
	}
	// Pivot is verse 1 (range start), so next is verse 2.
	if next.Reference != "Бытие 1:2" {
		t.Errorf("reference = %q", next.Reference)
	}
}

func mustParse(t *testing.T, p *refparse.Parser, q string) *refparse.ParsedReference {
	t.Helper()
	ref, ok := p.Parse(q)
	if !ok {
		t.Fatalf("parse %q failed", q)
	}
	return ref
}
