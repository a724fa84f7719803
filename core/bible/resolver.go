package bible

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eternallight/lumen/core/canon"
	"github.com/eternallight/lumen/core/refparse"
)

// ResolvedVerse is the unit exchanged between controller and display.
// It is created by the resolver, may be overridden once by a stored manual
// edit, and is immutable afterwards until superseded.
type ResolvedVerse struct {
	Text        string     `json:"text"`
	Reference   string     `json:"reference"`
	BookTitle   string     `json:"bookName"`
	Chapter     string     `json:"chapter"`
	Verse       string     `json:"verse"` // original specifier: "16", "4-8", "1,3"
	Code        canon.Code `json:"canonicalCode"`
	BookID      int        `json:"bookId"`
	Translation string     `json:"translation"`
}

// Resolver looks up parsed references and traverses verses in a dataset.
type Resolver struct {
	reg *canon.Registry
}

// NewResolver creates a Resolver backed by the given registry.
func NewResolver(reg *canon.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// specStart extracts the pivot verse from a specifier: the start of a range,
// the first entry of a comma list, or the single verse itself.
func specStart(spec string) (int, bool) {
	s := spec
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// selectVerses picks the dataset verses matching a specifier. Ranges and
// comma lists only include verses that actually exist in the chapter.
func selectVerses(ch *Chapter, spec string) []Verse {
	switch {
	case strings.Contains(spec, "-"):
		parts := strings.SplitN(spec, "-", 2)
		start, err1 := strconv.Atoi(parts[0])
		end, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return nil
		}
		var out []Verse
		for _, v := range ch.Verses {
			if v.VerseID >= start && v.VerseID <= end {
				out = append(out, v)
			}
		}
		return out

	case strings.Contains(spec, ","):
		wanted := make(map[int]bool)
		for _, p := range strings.Split(spec, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
				wanted[n] = true
			}
		}
		var out []Verse
		for _, v := range ch.Verses {
			if wanted[v.VerseID] {
				out = append(out, v)
			}
		}
		return out

	default:
		n, err := strconv.Atoi(spec)
		if err != nil {
			return nil
		}
		if v := ch.Verse(n); v != nil {
			return []Verse{*v}
		}
		return nil
	}
}

// resolved assembles a ResolvedVerse with the localized reference label.
func (r *Resolver) resolved(code canon.Code, bookID int, translation string, chapter, spec, text string) *ResolvedVerse {
	title := r.reg.TitleFor(code, r.reg.LanguageFor(translation))
	return &ResolvedVerse{
		Text:        text,
		Reference:   fmt.Sprintf("%s %s:%s", title, chapter, spec),
		BookTitle:   title,
		Chapter:     chapter,
		Verse:       spec,
		Code:        code,
		BookID:      bookID,
		Translation: translation,
	}
}

// FetchVerse resolves a parsed reference against a dataset. It returns nil
// when the translation has no mapping for the book, the book/chapter/verse is
// absent from the dataset, or the dataset itself is nil. Range and comma
// specifiers concatenate the matched texts with single spaces while the
// specifier string is preserved in the reference label.
func (r *Resolver) FetchVerse(ref *refparse.ParsedReference, ds *Dataset, translation string) *ResolvedVerse {
	if ds == nil || ref == nil {
		return nil
	}

	bookID, ok := r.reg.BookIDFor(ref.Code, translation)
	if !ok {
		return nil
	}
	book := ds.Book(bookID)
	if book == nil {
		return nil
	}

	chapterID, err := strconv.Atoi(ref.Chapter)
	if err != nil {
		return nil
	}
	chapter := book.Chapter(chapterID)
	if chapter == nil {
		return nil
	}

	verses := selectVerses(chapter, ref.Verse)
	if len(verses) == 0 {
		return nil
	}

	texts := make([]string, len(verses))
	for i, v := range verses {
		texts[i] = v.Text
	}

	return r.resolved(ref.Code, bookID, translation, ref.Chapter, ref.Verse, strings.Join(texts, " "))
}

// FullTextSearch scans every verse in dataset order (canonical book, chapter,
// verse order for that translation) for a case-insensitive substring match.
// It stops as soon as limit matches are collected, which bounds latency for
// common short queries and makes result order deterministic.
func (r *Resolver) FullTextSearch(term string, ds *Dataset, translation string, limit int) []ResolvedVerse {
	term = strings.ToLower(strings.TrimSpace(term))
	if ds == nil || term == "" || limit <= 0 {
		return nil
	}

	var results []ResolvedVerse
	for _, book := range ds.Books {
		code, ok := r.reg.CodeFromBookID(book.BookID, translation)
		if !ok {
			continue
		}
		for _, ch := range book.Chapters {
			for _, v := range ch.Verses {
				if !strings.Contains(strings.ToLower(v.Text), term) {
					continue
				}
				chStr := strconv.Itoa(ch.ChapterID)
				vStr := strconv.Itoa(v.VerseID)
				results = append(results, *r.resolved(code, book.BookID, translation, chStr, vStr, v.Text))
				if len(results) >= limit {
					return results
				}
			}
		}
	}
	return results
}

// verseAt builds a ResolvedVerse for an exact dataset position.
func (r *Resolver) verseAt(ds *Dataset, book *DatasetBook, ch *Chapter, v *Verse, translation string) *ResolvedVerse {
	code, ok := r.reg.CodeFromBookID(book.BookID, translation)
	if !ok {
		return nil
	}
	return r.resolved(code, book.BookID, translation, strconv.Itoa(ch.ChapterID), strconv.Itoa(v.VerseID), v.Text)
}

// NextVerse returns the verse after current, crossing chapter and book
// boundaries in dataset order. It returns nil only at the very end of the
// canon. A range or list specifier pivots on its start verse.
func (r *Resolver) NextVerse(current *ResolvedVerse, ds *Dataset, translation string) *ResolvedVerse {
	if ds == nil || current == nil {
		return nil
	}

	book := ds.Book(current.BookID)
	if book == nil {
		return nil
	}
	chapterID, err := strconv.Atoi(current.Chapter)
	if err != nil {
		return nil
	}
	chapter := book.Chapter(chapterID)
	if chapter == nil {
		return nil
	}
	pivot, ok := specStart(current.Verse)
	if !ok {
		return nil
	}

	// Next verse in the same chapter.
	if v := chapter.Verse(pivot + 1); v != nil {
		return r.verseAt(ds, book, chapter, v, translation)
	}

	// First verse of the next chapter.
	if next := book.Chapter(chapterID + 1); next != nil && len(next.Verses) > 0 {
		return r.verseAt(ds, book, next, &next.Verses[0], translation)
	}

	// First verse of the next book in dataset order. Crossing the boundary
	// changes the applicable canonical code, recomputed in verseAt via the
	// reverse book-map lookup.
	if idx := ds.bookIndex(current.BookID); idx >= 0 && idx < len(ds.Books)-1 {
		nextBook := &ds.Books[idx+1]
		if len(nextBook.Chapters) > 0 && len(nextBook.Chapters[0].Verses) > 0 {
			first := &nextBook.Chapters[0]
			return r.verseAt(ds, nextBook, first, &first.Verses[0], translation)
		}
	}

	return nil
}

// PrevVerse returns the verse before current, crossing chapter and book
// boundaries in dataset order. It returns nil only at Genesis 1:1.
func (r *Resolver) PrevVerse(current *ResolvedVerse, ds *Dataset, translation string) *ResolvedVerse {
	if ds == nil || current == nil {
		return nil
	}

	book := ds.Book(current.BookID)
	if book == nil {
		return nil
	}
	chapterID, err := strconv.Atoi(current.Chapter)
	if err != nil {
		return nil
	}
	chapter := book.Chapter(chapterID)
	if chapter == nil {
		return nil
	}
	pivot, ok := specStart(current.Verse)
	if !ok {
		return nil
	}

	// Previous verse in the same chapter.
	if pivot > 1 {
		if v := chapter.Verse(pivot - 1); v != nil {
			return r.verseAt(ds, book, chapter, v, translation)
		}
	}

	// Last verse of the previous chapter.
	if idx := book.chapterIndex(chapterID); idx > 0 {
		prev := &book.Chapters[idx-1]
		if len(prev.Verses) > 0 {
			return r.verseAt(ds, book, prev, &prev.Verses[len(prev.Verses)-1], translation)
		}
	}

	// Last verse of the previous book in dataset order.
	if idx := ds.bookIndex(current.BookID); idx > 0 {
		prevBook := &ds.Books[idx-1]
		if len(prevBook.Chapters) > 0 {
			last := &prevBook.Chapters[len(prevBook.Chapters)-1]
			if len(last.Verses) > 0 {
				return r.verseAt(ds, prevBook, last, &last.Verses[len(last.Verses)-1], translation)
			}
		}
	}

	return nil
}
