// Package bible provides translation datasets and the verse resolver.
//
// A dataset is the external provider shape: books in the translation's own
// file order, each holding chapters and verses addressed by integer IDs. IDs
// are matched exactly; chapters and verses need not be contiguous.
package bible

// Dataset is one translation's complete text.
type Dataset struct {
	Books []DatasetBook `json:"Books"`
}

// DatasetBook is a book as stored in the dataset, addressed by the
// translation-specific book ID (not comparable across translations).
type DatasetBook struct {
	BookID   int       `json:"BookId"`
	BookName string    `json:"BookName,omitempty"`
	Chapters []Chapter `json:"Chapters"`
}

// Chapter holds the verses of one chapter.
type Chapter struct {
	ChapterID int     `json:"ChapterId"`
	Verses    []Verse `json:"Verses"`
}

// Verse is a single verse; Text may contain inline markup.
type Verse struct {
	VerseID int    `json:"VerseId"`
	Text    string `json:"Text"`
}

// Book returns the book with the given translation-specific ID.
func (d *Dataset) Book(bookID int) *DatasetBook {
	for i := range d.Books {
		if d.Books[i].BookID == bookID {
			return &d.Books[i]
		}
	}
	return nil
}

// bookIndex returns the position of a book in dataset file order, or -1.
func (d *Dataset) bookIndex(bookID int) int {
	for i := range d.Books {
		if d.Books[i].BookID == bookID {
			return i
		}
	}
	return -1
}

// Chapter returns the chapter with the given ID.
func (b *DatasetBook) Chapter(chapterID int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].ChapterID == chapterID {
			return &b.Chapters[i]
		}
	}
	return nil
}

// chapterIndex returns the position of a chapter in book order, or -1.
func (b *DatasetBook) chapterIndex(chapterID int) int {
	for i := range b.Chapters {
		if b.Chapters[i].ChapterID == chapterID {
			return i
		}
	}
	return -1
}

// Verse returns the verse with the given ID.
func (c *Chapter) Verse(verseID int) *Verse {
	for i := range c.Verses {
		if c.Verses[i].VerseID == verseID {
			return &c.Verses[i]
		}
	}
	return nil
}
