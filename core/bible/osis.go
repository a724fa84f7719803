package bible

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/eternallight/lumen/core/canon"
	lumerr "github.com/eternallight/lumen/core/errors"
)

// osisBookCodes maps OSIS book identifiers (as they appear in osisID
// attributes) to canonical codes.
var osisBookCodes = map[string]canon.Code{
	"Gen": "GEN", "Exod": "EXO", "Lev": "LEV", "Num": "NUM", "Deut": "DEU",
	"Josh": "JOS", "Judg": "JDG", "Ruth": "RUT", "1Sam": "1SA", "2Sam": "2SA",
	"1Kgs": "1KI", "2Kgs": "2KI", "1Chr": "1CH", "2Chr": "2CH", "Ezra": "EZR",
	"Neh": "NEH", "Esth": "EST", "Job": "JOB", "Ps": "PSA", "Prov": "PRO",
	"Eccl": "ECC", "Song": "SNG", "Isa": "ISA", "Jer": "JER", "Lam": "LAM",
	"Ezek": "EZK", "Dan": "DAN", "Hos": "HOS", "Joel": "JOL", "Amos": "AMO",
	"Obad": "OBA", "Jonah": "JON", "Mic": "MIC", "Nah": "NAM", "Hab": "HAB",
	"Zeph": "ZEP", "Hag": "HAG", "Zech": "ZEC", "Mal": "MAL",
	"Matt": "MAT", "Mark": "MRK", "Luke": "LUK", "John": "JHN", "Acts": "ACT",
	"Rom": "ROM", "1Cor": "1CO", "2Cor": "2CO", "Gal": "GAL", "Eph": "EPH",
	"Phil": "PHP", "Col": "COL", "1Thess": "1TH", "2Thess": "2TH",
	"1Tim": "1TI", "2Tim": "2TI", "Titus": "TIT", "Phlm": "PHM", "Heb": "HEB",
	"Jas": "JAS", "1Pet": "1PE", "2Pet": "2PE", "1John": "1JN", "2John": "2JN",
	"3John": "3JN", "Jude": "JUD", "Rev": "REV",
}

// splitOSISRef splits an osisID like "Gen.1.1" into its parts.
func splitOSISRef(osisID string) (book string, chapter, verse int) {
	parts := strings.Split(osisID, ".")
	book = parts[0]
	if len(parts) > 1 {
		chapter, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		verse, _ = strconv.Atoi(parts[2])
	}
	return book, chapter, verse
}

// ParseOSIS imports an OSIS XML document into the native dataset shape.
// Book IDs are assigned from the translation's book map, so books come out
// in that translation's numbering even when the XML orders them differently.
// Books the translation does not define are skipped.
func ParseOSIS(r io.Reader, reg *canon.Registry, translation string) (*Dataset, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, lumerr.NewParse("OSIS", "", err.Error())
	}

	bookNodes := xmlquery.Find(doc, "//div[@type='book']")
	if len(bookNodes) == 0 {
		return nil, lumerr.NewParse("OSIS", "", "no book divisions found")
	}

	lang := reg.LanguageFor(translation)
	var books []DatasetBook

	for _, bn := range bookNodes {
		osisBook, _, _ := splitOSISRef(bn.SelectAttr("osisID"))
		code, ok := osisBookCodes[osisBook]
		if !ok {
			continue
		}
		bookID, ok := reg.BookIDFor(code, translation)
		if !ok {
			continue
		}

		book := DatasetBook{
			BookID:   bookID,
			BookName: reg.TitleFor(code, lang),
		}

		for _, cn := range xmlquery.Find(bn, ".//chapter") {
			_, chapterID, _ := splitOSISRef(cn.SelectAttr("osisID"))
			if chapterID == 0 {
				continue
			}
			chapter := Chapter{ChapterID: chapterID}

			for _, vn := range xmlquery.Find(cn, ".//verse") {
				_, _, verseID := splitOSISRef(vn.SelectAttr("osisID"))
				if verseID == 0 {
					continue
				}
				text := strings.TrimSpace(vn.InnerText())
				if text == "" {
					continue
				}
				chapter.Verses = append(chapter.Verses, Verse{VerseID: verseID, Text: text})
			}

			if len(chapter.Verses) > 0 {
				book.Chapters = append(book.Chapters, chapter)
			}
		}

		if len(book.Chapters) > 0 {
			books = append(books, book)
		}
	}

	if len(books) == 0 {
		return nil, lumerr.NewParse("OSIS", "", "no verses extracted")
	}

	// Dataset file order is the translation's own book-ID order.
	sort.Slice(books, func(i, j int) bool { return books[i].BookID < books[j].BookID })

	return &Dataset{Books: books}, nil
}
