package songs

import (
	"testing"
)

func TestParseStanzas(t *testing.T) {
	text := "Первый куплет\nстрока два\n\nПрипев текст\n\nВторой куплет\n\nПрипев текст"
	stanzas := ParseStanzas(text)
	if len(stanzas) != 4 {
		t.Fatalf("got %d stanzas, want 4", len(stanzas))
	}

	// The first occurrence of the chorus text counts as a verse; only a
	// repeat is labeled as the chorus.
	want := []struct {
		label    string
		isChorus bool
	}{
		{"Куплет 1", false},
		{"Куплет 2", false},
		{"Куплет 3", false},
		{"Припев", true},
	}
	for i, w := range want {
		if stanzas[i].Label != w.label || stanzas[i].IsChorus != w.isChorus {
			t.Errorf("stanza %d = %q chorus=%v, want %q chorus=%v",
				i, stanzas[i].Label, stanzas[i].IsChorus, w.label, w.isChorus)
		}
	}
}

func TestParseStanzasSkipsEmpty(t *testing.T) {
	stanzas := ParseStanzas("Один\n\n\n\nДва")
	if len(stanzas) != 2 {
		t.Fatalf("got %d stanzas, want 2", len(stanzas))
	}
	if stanzas[1].Label != "Куплет 2" {
		t.Errorf("label = %q", stanzas[1].Label)
	}
}

func TestParseStanzasEmptyText(t *testing.T) {
	if got := ParseStanzas(""); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

// memStore is an in-memory Store for tests.
type memStore struct {
	songs map[string]Song
}

func newMemStore() *memStore { return &memStore{songs: map[string]Song{}} }

func (m *memStore) ListSongs() ([]Song, error) {
	out := make([]Song, 0, len(m.songs))
	for _, s := range m.songs {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) SaveSong(s Song) error {
	m.songs[s.ID] = s
	return nil
}

func (m *memStore) DeleteSong(id string) error {
	delete(m.songs, id)
	return nil
}

func staticBook() *Songbook {
	return &Songbook{
		ID:     "pv",
		Title:  "Песнь Возрождения",
		Lang:   "ru",
		Static: true,
		Songs: []Song{
			{ID: "pv_12", BookID: "pv", Number: 12, Title: "Великий Бог", Text: "Великий Бог! Когда на мир смотрю я"},
			{ID: "pv_3", BookID: "pv", Number: 3, Title: "Тихая ночь", Text: "Тихая ночь, дивная ночь"},
			{ID: "pv_120", BookID: "pv", Number: 120, Title: "Бог есть любовь", Text: "Бог есть любовь, о славьте"},
		},
	}
}

func TestLibrarySearchByNumber(t *testing.T) {
	lib, err := NewLibrary([]*Songbook{staticBook()}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The number is part of the search key, so "12" also matches 120 as
	// a substring; the exact match sorts first.
	got := lib.Search("12", "")
	if len(got) != 2 || got[0].ID != "pv_12" || got[1].ID != "pv_120" {
		t.Fatalf("number search = %v", got)
	}
}

func TestLibrarySearchByText(t *testing.T) {
	lib, _ := NewLibrary([]*Songbook{staticBook()}, nil)

	got := lib.Search("тихая", "")
	if len(got) != 1 || got[0].Title != "Тихая ночь" {
		t.Fatalf("got %v", got)
	}

	// Punctuation and case in the query are ignored.
	got = lib.Search("ВЕЛИКИЙ, БОГ!", "")
	if len(got) != 1 || got[0].Number != 12 {
		t.Fatalf("got %v", got)
	}
}

func TestLibrarySearchSorted(t *testing.T) {
	lib, _ := NewLibrary([]*Songbook{staticBook()}, nil)

	got := lib.Search("", "pv")
	if len(got) != 3 {
		t.Fatalf("got %d songs", len(got))
	}
	if got[0].Number != 3 || got[1].Number != 12 || got[2].Number != 120 {
		t.Errorf("order = %d,%d,%d", got[0].Number, got[1].Number, got[2].Number)
	}
}

func TestLibrarySearchBookFilter(t *testing.T) {
	store := newMemStore()
	lib, _ := NewLibrary([]*Songbook{staticBook()}, store)
	if _, err := lib.Save(Song{Title: "Новая песня", Text: "текст"}); err != nil {
		t.Fatal(err)
	}

	if got := lib.Search("", UserBookID); len(got) != 1 {
		t.Errorf("user book filter: got %d songs", len(got))
	}
	if got := lib.Search("", "all"); len(got) != 4 {
		t.Errorf("all books: got %d songs", len(got))
	}
}

func TestLibrarySaveAndDelete(t *testing.T) {
	store := newMemStore()
	lib, _ := NewLibrary(nil, store)

	saved, err := lib.Save(Song{Number: 7, Title: "Гимн", Text: "текст"})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Fatal("new song should get an ID")
	}
	if saved.BookID != UserBookID {
		t.Errorf("bookId = %q", saved.BookID)
	}
	if _, ok := store.songs[saved.ID]; !ok {
		t.Error("song not persisted")
	}

	saved.Title = "Гимн хвалы"
	if _, err := lib.Save(saved); err != nil {
		t.Fatal(err)
	}
	got, ok := lib.Song(saved.ID)
	if !ok || got.Title != "Гимн хвалы" {
		t.Errorf("updated song = %+v", got)
	}

	if err := lib.Delete(saved.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := lib.Song(saved.ID); ok {
		t.Error("song still present after delete")
	}
	if err := lib.Delete(saved.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestLibrarySaveValidation(t *testing.T) {
	lib, _ := NewLibrary(nil, nil)
	if _, err := lib.Save(Song{Text: "без названия"}); err == nil {
		t.Error("empty title should fail")
	}
	if _, err := lib.Save(Song{ID: "missing", Title: "x"}); err == nil {
		t.Error("updating unknown ID should fail")
	}
}

func TestLibraryLoadsUserSongsFromStore(t *testing.T) {
	store := newMemStore()
	store.songs["u1"] = Song{ID: "u1", BookID: UserBookID, Title: "Сохранённая", Text: "текст"}

	lib, err := NewLibrary(nil, store)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := lib.Song("u1"); !ok {
		t.Error("stored user song not loaded")
	}
}
