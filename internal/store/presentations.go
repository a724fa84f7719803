package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	lumerr "github.com/eternallight/lumen/core/errors"
)

// Presentation is slide-deck metadata. Slides holds blob digests in
// display order; the image bytes live in the content-addressed store.
type Presentation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slides    []string  `json:"slides"`
	CreatedAt time.Time `json:"createdAt"`
	Deleted   bool      `json:"deleted,omitempty"`
}

// Background is background-image metadata referencing a blob digest.
type Background struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"createdAt"`
	Deleted   bool      `json:"deleted,omitempty"`
}

// CreatePresentation records a new presentation with its slide digests.
func (s *Store) CreatePresentation(title string, slides []string) (Presentation, error) {
	if title == "" {
		return Presentation{}, lumerr.NewValidation("title", "presentation title is required")
	}

	p := Presentation{
		ID:        uuid.NewString(),
		Title:     title,
		Slides:    slides,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Presentation{}, lumerr.Wrap(err, "creating presentation")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO presentations (id, title, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Title, p.CreatedAt.Format(time.RFC3339)); err != nil {
		return Presentation{}, lumerr.Wrap(err, "creating presentation")
	}
	for i, digest := range slides {
		if _, err := tx.Exec(`INSERT INTO presentation_slides (presentation_id, position, digest) VALUES (?, ?, ?)`,
			p.ID, i, digest); err != nil {
			return Presentation{}, lumerr.Wrap(err, "recording slide")
		}
	}
	if err := tx.Commit(); err != nil {
		return Presentation{}, lumerr.Wrap(err, "creating presentation")
	}
	return p, nil
}

// GetPresentation fetches one presentation with its slides, including
// soft-deleted ones.
func (s *Store) GetPresentation(id string) (Presentation, error) {
	var p Presentation
	var created string
	var deleted int
	err := s.db.QueryRow(`SELECT id, title, created_at, deleted FROM presentations WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &created, &deleted)
	if err == sql.ErrNoRows {
		return Presentation{}, lumerr.NewNotFound("presentation", id)
	}
	if err != nil {
		return Presentation{}, lumerr.Wrap(err, "fetching presentation")
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.Deleted = deleted != 0

	rows, err := s.db.Query(`SELECT digest FROM presentation_slides WHERE presentation_id = ? ORDER BY position`, id)
	if err != nil {
		return Presentation{}, lumerr.Wrap(err, "fetching slides")
	}
	defer rows.Close()
	for rows.Next() {
		var digest string
		if err := rows.Scan(&digest); err != nil {
			return Presentation{}, lumerr.Wrap(err, "scanning slide")
		}
		p.Slides = append(p.Slides, digest)
	}
	return p, rows.Err()
}

// ListPresentations returns presentation metadata without slides.
// Soft-deleted entries are included only when withDeleted is set.
func (s *Store) ListPresentations(withDeleted bool) ([]Presentation, error) {
	q := `SELECT id, title, created_at, deleted FROM presentations`
	if !withDeleted {
		q += ` WHERE deleted = 0`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(q)
	if err != nil {
		return nil, lumerr.Wrap(err, "listing presentations")
	}
	defer rows.Close()

	var out []Presentation
	for rows.Next() {
		var p Presentation
		var created string
		var deleted int
		if err := rows.Scan(&p.ID, &p.Title, &created, &deleted); err != nil {
			return nil, lumerr.Wrap(err, "scanning presentation")
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, created)
		p.Deleted = deleted != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePresentation soft-deletes a presentation; blobs stay in the
// content store so Restore can bring it back.
func (s *Store) DeletePresentation(id string) error {
	return s.setPresentationDeleted(id, true)
}

// RestorePresentation undoes a soft delete.
func (s *Store) RestorePresentation(id string) error {
	return s.setPresentationDeleted(id, false)
}

func (s *Store) setPresentationDeleted(id string, deleted bool) error {
	flag := 0
	if deleted {
		flag = 1
	}
	res, err := s.db.Exec(`UPDATE presentations SET deleted = ? WHERE id = ?`, flag, id)
	if err != nil {
		return lumerr.Wrap(err, "updating presentation")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lumerr.NewNotFound("presentation", id)
	}
	return nil
}

// CreateBackground records a new background referencing a blob digest.
func (s *Store) CreateBackground(title, digest string) (Background, error) {
	if digest == "" {
		return Background{}, lumerr.NewValidation("digest", "background digest is required")
	}
	b := Background{
		ID:        uuid.NewString(),
		Title:     title,
		Digest:    digest,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(`INSERT INTO backgrounds (id, title, digest, created_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Title, b.Digest, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return Background{}, lumerr.Wrap(err, "creating background")
	}
	return b, nil
}

// ListBackgrounds returns background metadata, excluding soft-deleted
// entries unless withDeleted is set.
func (s *Store) ListBackgrounds(withDeleted bool) ([]Background, error) {
	q := `SELECT id, title, digest, created_at, deleted FROM backgrounds`
	if !withDeleted {
		q += ` WHERE deleted = 0`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(q)
	if err != nil {
		return nil, lumerr.Wrap(err, "listing backgrounds")
	}
	defer rows.Close()

	var out []Background
	for rows.Next() {
		var b Background
		var created string
		var deleted int
		if err := rows.Scan(&b.ID, &b.Title, &b.Digest, &created, &deleted); err != nil {
			return nil, lumerr.Wrap(err, "scanning background")
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, created)
		b.Deleted = deleted != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBackground soft-deletes a background.
func (s *Store) DeleteBackground(id string) error {
	return s.setBackgroundDeleted(id, true)
}

// RestoreBackground undoes a soft delete.
func (s *Store) RestoreBackground(id string) error {
	return s.setBackgroundDeleted(id, false)
}

func (s *Store) setBackgroundDeleted(id string, deleted bool) error {
	flag := 0
	if deleted {
		flag = 1
	}
	res, err := s.db.Exec(`UPDATE backgrounds SET deleted = ? WHERE id = ?`, flag, id)
	if err != nil {
		return lumerr.Wrap(err, "updating background")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lumerr.NewNotFound("background", id)
	}
	return nil
}
