package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/internal/logging"
)

// editKey builds the storage key for a manual verse edit. Book is the
// localized book title as shown to the operator.
func editKey(translation, book, chapter, verse string) string {
	return fmt.Sprintf("%s_%s_%s_%s", translation, book, chapter, verse)
}

// GetEdit returns the manual edit for a verse, if any. Keys written
// before translations were part of the key carry no prefix; those legacy
// keys are honored for RST only.
func (s *Store) GetEdit(translation, book, chapter, verse string) (string, bool) {
	if text, ok := s.editByKey(editKey(translation, book, chapter, verse)); ok {
		return text, true
	}
	if translation == "RST" {
		legacy := fmt.Sprintf("%s_%s_%s", book, chapter, verse)
		if text, ok := s.editByKey(legacy); ok {
			return text, true
		}
	}
	return "", false
}

func (s *Store) editByKey(key string) (string, bool) {
	var text string
	err := s.db.QueryRow(`SELECT text FROM edits WHERE key = ?`, key).Scan(&text)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	case err != nil:
		logging.Warn("edit lookup failed", "key", key, "error", err)
		return "", false
	}
	return text, true
}

// SetEdit stores (or overwrites) the manual edit for a verse.
func (s *Store) SetEdit(translation, book, chapter, verse, text string) error {
	_, err := s.db.Exec(`
		INSERT INTO edits (key, text) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET text = excluded.text`,
		editKey(translation, book, chapter, verse), text)
	if err != nil {
		return lumerr.Wrap(err, "saving edit")
	}
	return nil
}

// DeleteEdit removes the manual edit for a verse. Absent edits are a
// no-op.
func (s *Store) DeleteEdit(translation, book, chapter, verse string) error {
	_, err := s.db.Exec(`DELETE FROM edits WHERE key = ?`,
		editKey(translation, book, chapter, verse))
	if err != nil {
		return lumerr.Wrap(err, "deleting edit")
	}
	return nil
}

// ExportEdits serializes all edits as an indented JSON object keyed by
// edit key.
func (s *Store) ExportEdits() ([]byte, error) {
	rows, err := s.db.Query(`SELECT key, text FROM edits`)
	if err != nil {
		return nil, lumerr.Wrap(err, "exporting edits")
	}
	defer rows.Close()

	edits := make(map[string]string)
	for rows.Next() {
		var key, text string
		if err := rows.Scan(&key, &text); err != nil {
			return nil, lumerr.Wrap(err, "scanning edit")
		}
		edits[key] = text
	}
	if err := rows.Err(); err != nil {
		return nil, lumerr.Wrap(err, "exporting edits")
	}
	return json.MarshalIndent(edits, "", "  ")
}

// ImportEdits merges edits from a JSON export into the store. Existing
// keys are overwritten; edits not present in the import are kept.
func (s *Store) ImportEdits(data []byte) (int, error) {
	var edits map[string]string
	if err := json.Unmarshal(data, &edits); err != nil {
		return 0, lumerr.NewValidation("edits", "malformed edits JSON: "+err.Error())
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, lumerr.Wrap(err, "importing edits")
	}
	defer tx.Rollback()

	for key, text := range edits {
		if _, err := tx.Exec(`
			INSERT INTO edits (key, text) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET text = excluded.text`, key, text); err != nil {
			return 0, lumerr.Wrap(err, "importing edit "+key)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, lumerr.Wrap(err, "importing edits")
	}
	return len(edits), nil
}
