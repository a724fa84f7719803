// Package songs manages songbooks, song search and stanza parsing.
package songs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	lumerr "github.com/eternallight/lumen/core/errors"
)

// UserBookID is the songbook holding operator-created songs.
const UserBookID = "user"

// Songbook is a collection of songs, either a built-in static book or the
// local user book.
type Songbook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Lang   string `json:"lang"`
	Static bool   `json:"static"`
	Songs  []Song `json:"songs"`
}

// Song is a single song. Text holds stanzas separated by blank lines.
type Song struct {
	ID     string `json:"id"`
	BookID string `json:"bookId"`
	Number int    `json:"number,omitempty"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Stanza is one block of a song, broadcast individually.
type Stanza struct {
	Text     string
	Label    string
	IsChorus bool
}

// searchNoise strips punctuation for search matching, keeping Latin and
// Cyrillic word characters including the Kazakh/Kyrgyz letters ү, ө, ң.
var searchNoise = regexp.MustCompile(`[^\w\sа-яёүөң]`)

func normalizeSearch(s string) string {
	return searchNoise.ReplaceAllString(strings.ToLower(s), "")
}

// searchKey builds the normalized haystack for one song.
func searchKey(s Song) string {
	parts := make([]string, 0, 3)
	if s.Number > 0 {
		parts = append(parts, strconv.Itoa(s.Number))
	}
	parts = append(parts, s.Title, s.Text)
	return normalizeSearch(strings.Join(parts, " "))
}

// ParseStanzas splits song text into stanzas on blank lines. A stanza
// whose trimmed text repeats an earlier stanza is the chorus; the rest
// are numbered verses.
func ParseStanzas(text string) []Stanza {
	seen := make(map[string]struct{})
	verseNum := 0
	var out []Stanza

	for _, raw := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		_, isChorus := seen[trimmed]
		if !isChorus {
			seen[trimmed] = struct{}{}
			verseNum++
		}

		label := "Куплет " + strconv.Itoa(verseNum)
		if isChorus {
			label = "Припев"
		}
		out = append(out, Stanza{Text: trimmed, Label: label, IsChorus: isChorus})
	}
	return out
}

// Store persists the user songbook.
type Store interface {
	ListSongs() ([]Song, error)
	SaveSong(Song) error
	DeleteSong(id string) error
}

// Library holds all loaded songbooks and serves search and user CRUD.
type Library struct {
	books []*Songbook
	store Store
}

// NewLibrary assembles a library from static songbooks plus the user book
// loaded from the store. A nil store yields an empty, non-persistent user
// book.
func NewLibrary(static []*Songbook, store Store) (*Library, error) {
	lib := &Library{store: store}
	lib.books = append(lib.books, static...)

	userBook := &Songbook{ID: UserBookID, Title: "Мои Песни", Lang: "ru"}
	if store != nil {
		userSongs, err := store.ListSongs()
		if err != nil {
			return nil, lumerr.Wrap(err, "loading user songs")
		}
		userBook.Songs = userSongs
	}
	lib.books = append(lib.books, userBook)
	return lib, nil
}

// Songbooks returns all loaded books, the user book last.
func (l *Library) Songbooks() []*Songbook {
	return l.books
}

// Song looks a song up by ID across all books.
func (l *Library) Song(id string) (Song, bool) {
	for _, b := range l.books {
		for _, s := range b.Songs {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Song{}, false
}

func (l *Library) userBook() *Songbook {
	for _, b := range l.books {
		if b.ID == UserBookID {
			return b
		}
	}
	return nil
}

// Save creates or updates a song in the user book. New songs get a
// generated ID.
func (l *Library) Save(s Song) (Song, error) {
	book := l.userBook()
	if book == nil {
		return Song{}, lumerr.NewNotFound("songbook", UserBookID)
	}
	if strings.TrimSpace(s.Title) == "" {
		return Song{}, lumerr.NewValidation("title", "song title is required")
	}

	s.BookID = UserBookID
	if s.ID == "" {
		s.ID = uuid.NewString()
		book.Songs = append(book.Songs, s)
	} else {
		found := false
		for i := range book.Songs {
			if book.Songs[i].ID == s.ID {
				book.Songs[i] = s
				found = true
				break
			}
		}
		if !found {
			return Song{}, lumerr.NewNotFound("song", s.ID)
		}
	}

	if l.store != nil {
		if err := l.store.SaveSong(s); err != nil {
			return Song{}, lumerr.Wrap(err, "saving song")
		}
	}
	return s, nil
}

// Delete removes a user song.
func (l *Library) Delete(id string) error {
	book := l.userBook()
	if book == nil {
		return lumerr.NewNotFound("songbook", UserBookID)
	}
	for i := range book.Songs {
		if book.Songs[i].ID == id {
			book.Songs = append(book.Songs[:i], book.Songs[i+1:]...)
			if l.store != nil {
				if err := l.store.DeleteSong(id); err != nil {
					return lumerr.Wrap(err, "deleting song")
				}
			}
			return nil
		}
	}
	return lumerr.NewNotFound("song", id)
}

// Search finds songs by number, title or lyrics. An exact number match
// always qualifies; otherwise the normalized query must appear in the
// song's normalized number+title+text. bookID filters to one book; ""
// or "all" searches everything. Results sort by number then title.
func (l *Library) Search(query, bookID string) []Song {
	var pool []Song
	for _, b := range l.books {
		if bookID != "" && bookID != "all" && b.ID != bookID {
			continue
		}
		pool = append(pool, b.Songs...)
	}

	query = strings.TrimSpace(query)
	var out []Song
	if query == "" {
		out = pool
	} else {
		number, numErr := strconv.Atoi(query)
		normalized := normalizeSearch(query)
		for _, s := range pool {
			if numErr == nil && s.Number == number {
				out = append(out, s)
				continue
			}
			if normalized != "" && strings.Contains(searchKey(s), normalized) {
				out = append(out, s)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].Title < out[j].Title
	})
	return out
}
