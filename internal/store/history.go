package store

import (
	lumerr "github.com/eternallight/lumen/core/errors"
)

// HistoryEntry is one recently broadcast verse reference.
type HistoryEntry struct {
	Reference   string `json:"reference"`
	Translation string `json:"translation"`
}

// LoadHistory returns the persisted history, most recent first.
func (s *Store) LoadHistory() ([]HistoryEntry, error) {
	rows, err := s.db.Query(`SELECT reference, translation FROM history ORDER BY position`)
	if err != nil {
		return nil, lumerr.Wrap(err, "loading history")
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Reference, &e.Translation); err != nil {
			return nil, lumerr.Wrap(err, "scanning history")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveHistory replaces the persisted history with the given entries,
// most recent first. The controller owns ordering and the length bound.
func (s *Store) SaveHistory(entries []HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return lumerr.Wrap(err, "saving history")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return lumerr.Wrap(err, "clearing history")
	}
	for i, e := range entries {
		if _, err := tx.Exec(`INSERT INTO history (position, reference, translation) VALUES (?, ?, ?)`,
			i, e.Reference, e.Translation); err != nil {
			return lumerr.Wrap(err, "writing history entry")
		}
	}
	return tx.Commit()
}
