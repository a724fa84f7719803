// Package canon provides the canonical Bible book registry.
//
// Books are identified by OSIS-style codes (GEN, 1CO, REV) that are stable
// across translations. Each translation maps canonical codes onto its own
// integer book IDs; the IDs are NOT comparable between translations (KTB
// orders the General Epistles before the Pauline Epistles), which is the
// reason the canonical layer exists.
package canon

import (
	"sort"
	"strings"
)

// Code is an OSIS-style canonical book identifier such as "GEN" or "1CO".
type Code string

// Language selects a localized book title.
type Language string

// Supported title languages.
const (
	LangRU Language = "ru"
	LangKZ Language = "kz"
	LangKY Language = "ky"
)

// Old Testament covers ordinals 1-39, New Testament 40-66.
const (
	FirstOrdinal       = 1
	LastOldTestament   = 39
	FirstNewTestament  = 40
	LastOrdinal        = 66
	fallbackTitle      = "Библия"
	canonicalBookCount = 66
)

// Book is an immutable canonical book record.
type Book struct {
	Code    Code
	Ordinal int // 1-66, unique and contiguous
	Titles  map[Language]string
	Abbrevs []string
}

// Translation describes one Bible edition's book numbering.
type Translation struct {
	Code     string
	Language Language
	byCode   map[Code]int
	byID     map[int]Code
}

// Registry resolves book names, abbreviations and per-translation book IDs.
// It is built once at startup and read-only afterwards.
type Registry struct {
	books        map[Code]*Book
	ordered      []*Book
	abbrIndex    map[string]Code
	translations map[string]*Translation
}

// normalizeName lowercases the input and strips whitespace and hyphens so
// that "1-я Коринфянам", "1 кор" and "1кор" all index identically.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.Join(strings.Fields(s), "")
}

// NewRegistry builds the default 66-book registry with the built-in
// translations (RST, NRT, KTB, KYB).
func NewRegistry() *Registry {
	r := &Registry{
		books:        make(map[Code]*Book, canonicalBookCount),
		abbrIndex:    make(map[string]Code),
		translations: make(map[string]*Translation),
	}

	for i := range canonicalBooks {
		r.register(&canonicalBooks[i])
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Ordinal < r.ordered[j].Ordinal
	})

	for code, lang := range builtinTranslations {
		r.RegisterTranslation(code, lang, translationBookIDs(code))
	}

	return r
}

// register indexes a book under every abbreviation and every normalized
// localized title. A later registration silently overwrites an earlier one;
// uniqueness is a configuration-time invariant, not a runtime concern.
func (r *Registry) register(b *Book) {
	r.books[b.Code] = b
	r.ordered = append(r.ordered, b)

	for _, abbr := range b.Abbrevs {
		r.abbrIndex[normalizeName(abbr)] = b.Code
	}
	for _, title := range b.Titles {
		r.abbrIndex[normalizeName(title)] = b.Code
	}
}

// RegisterTranslation adds or replaces a translation's book-ID mapping.
func (r *Registry) RegisterTranslation(code string, lang Language, bookIDs map[Code]int) {
	t := &Translation{
		Code:     code,
		Language: lang,
		byCode:   make(map[Code]int, len(bookIDs)),
		byID:     make(map[int]Code, len(bookIDs)),
	}
	for c, id := range bookIDs {
		t.byCode[c] = id
		t.byID[id] = c
	}
	r.translations[code] = t
}

// ResolveAbbreviation maps free-text input (abbreviation or localized title)
// to a canonical code.
func (r *Registry) ResolveAbbreviation(input string) (Code, bool) {
	code, ok := r.abbrIndex[normalizeName(input)]
	return code, ok
}

// BookIDFor returns the integer book ID a translation uses for a canonical code.
func (r *Registry) BookIDFor(code Code, translation string) (int, bool) {
	t, ok := r.translations[translation]
	if !ok {
		return 0, false
	}
	id, ok := t.byCode[code]
	return id, ok
}

// CodeFromBookID is the reverse of BookIDFor.
func (r *Registry) CodeFromBookID(bookID int, translation string) (Code, bool) {
	t, ok := r.translations[translation]
	if !ok {
		return "", false
	}
	code, ok := t.byID[bookID]
	return code, ok
}

// TitleFor returns the localized title for a code, falling back to Russian
// and then to a generic title for unknown codes.
func (r *Registry) TitleFor(code Code, lang Language) string {
	b, ok := r.books[code]
	if !ok {
		return fallbackTitle
	}
	if title, ok := b.Titles[lang]; ok && title != "" {
		return title
	}
	return b.Titles[LangRU]
}

// Book returns the canonical record for a code.
func (r *Registry) Book(code Code) (*Book, bool) {
	b, ok := r.books[code]
	return b, ok
}

// Books returns all books in canonical (ordinal) order.
func (r *Registry) Books() []*Book {
	out := make([]*Book, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Translations returns the registered translation codes, sorted.
func (r *Registry) Translations() []string {
	out := make([]string, 0, len(r.translations))
	for code := range r.translations {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// HasTranslation reports whether the translation code is registered.
func (r *Registry) HasTranslation(code string) bool {
	_, ok := r.translations[code]
	return ok
}

// LanguageFor returns the title language for a translation, defaulting to Russian.
func (r *Registry) LanguageFor(translation string) Language {
	if t, ok := r.translations[translation]; ok {
		return t.Language
	}
	return LangRU
}
