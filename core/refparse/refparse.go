// Package refparse turns free-text operator input like "ин 3 16" or
// "1 Кор 13:4-8" into a canonical (book, chapter, verse) reference.
//
// The parser is translation-agnostic: it resolves the book-name part against
// the canonical registry and leaves the translation-specific integer lookup
// to the resolver.
package refparse

import (
	"regexp"
	"strings"

	"github.com/eternallight/lumen/core/canon"
)

// ParsedReference is the transient result of parsing one query. Chapter and
// Verse stay strings: the verse specifier may be a range ("4-8") or a comma
// list ("1,3") and is preserved verbatim for the reference label.
type ParsedReference struct {
	Code     canon.Code
	BookName string // book-name text as matched, spaces removed
	Chapter  string
	Verse    string // single verse, "a-b" range, or comma list; defaults to "1"
}

// noiseWords are chapter/verse filler words operators habitually type.
// The Gospel prefix "от" is dropped too ("от матфея" -> "матфея").
var noiseWords = map[string]bool{
	"глава": true, "гл": true, "главы": true,
	"стих": true, "ст": true, "стихи": true,
	"от": true,
}

// ordinalSuffix matches Russian ordinal book prefixes as standalone tokens:
// "1-я", "2-е", "3й" and similar collapse to the bare number.
var ordinalSuffix = regexp.MustCompile(`^(\d+)-?[еяй]$`)

// typoFixes corrects misspellings seen in real operator input. Applied to the
// normalized query as plain substring replacements.
var typoFixes = [][2]string{
	{"парапалеменнон", "паралипоменон"},
	{"параполеменон", "паралипоменон"},
	{"парапалемилион", "паралипоменон"},
	{"еккелисиаст", "екклесиаст"},
	{"фесолоникийцам", "фессалоникийцам"},
	{"песни песней", "песнь песней"},
	{"плач иеремия", "плач иеремии"},
}

// refPattern splits the normalized query into book-name tokens, a chapter
// number, and an optional verse specifier. The non-greedy head means the book
// name is everything up to the last one-or-two number groups.
var refPattern = regexp.MustCompile(`^(.+?)\s+(\d+)(?:\s+([\d\-,]+))?$`)

// Parser parses verse reference queries against a canonical registry.
type Parser struct {
	reg *canon.Registry
}

// New creates a Parser backed by the given registry.
func New(reg *canon.Registry) *Parser {
	return &Parser{reg: reg}
}

// normalize runs the query cleanup pipeline: lowercase, punctuation to
// spaces, noise-word removal, ordinal suffix folding, typo correction,
// whitespace collapse.
func normalize(query string) string {
	q := strings.ToLower(query)
	q = strings.NewReplacer(":", " ", ".", " ", ",", " ").Replace(q)

	tokens := strings.Fields(q)
	kept := tokens[:0]
	for _, tok := range tokens {
		if noiseWords[tok] {
			continue
		}
		if m := ordinalSuffix.FindStringSubmatch(tok); m != nil {
			tok = m[1]
		}
		kept = append(kept, tok)
	}
	q = strings.Join(kept, " ")

	for _, fix := range typoFixes {
		q = strings.ReplaceAll(q, fix[0], fix[1])
	}
	return q
}

// Parse parses a free-text reference query. The only failure mode is an
// unresolvable book name (or a query without a chapter number); it is
// reported via ok=false and surfaced to the operator, never as an error.
func (p *Parser) Parse(query string) (*ParsedReference, bool) {
	q := normalize(query)

	m := refPattern.FindStringSubmatch(q)
	if m == nil {
		return nil, false
	}

	bookName := strings.ReplaceAll(m[1], " ", "")
	chapter := m[2]
	verse := m[3]
	if verse == "" {
		verse = "1"
	}

	code, ok := p.reg.ResolveAbbreviation(bookName)
	if !ok {
		return nil, false
	}

	return &ParsedReference{
		Code:     code,
		BookName: bookName,
		Chapter:  chapter,
		Verse:    verse,
	}, true
}
