package store

import (
	"database/sql"
	"encoding/json"

	"github.com/eternallight/lumen/core/display"
	lumerr "github.com/eternallight/lumen/core/errors"
)

const settingsKey = "display"

// LoadSettings returns the persisted display settings, or the defaults
// when none were saved yet. Saved fields merge over the defaults so
// settings written by older versions stay usable.
func (s *Store) LoadSettings() (display.Settings, error) {
	settings := display.DefaultSettings()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, lumerr.Wrap(err, "loading settings")
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return display.DefaultSettings(), lumerr.NewValidation("settings", "malformed stored settings: "+err.Error())
	}
	return settings, nil
}

// SaveSettings persists display settings.
func (s *Store) SaveSettings(settings display.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return lumerr.Wrap(err, "encoding settings")
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(raw))
	if err != nil {
		return lumerr.Wrap(err, "saving settings")
	}
	return nil
}
