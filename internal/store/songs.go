package store

import (
	"database/sql"

	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/core/songs"
)

// ListSongs returns every song in the user songbook.
func (s *Store) ListSongs() ([]songs.Song, error) {
	rows, err := s.db.Query(`SELECT id, number, title, text FROM songs ORDER BY number, title`)
	if err != nil {
		return nil, lumerr.Wrap(err, "listing songs")
	}
	defer rows.Close()

	var out []songs.Song
	for rows.Next() {
		song := songs.Song{BookID: songs.UserBookID}
		if err := rows.Scan(&song.ID, &song.Number, &song.Title, &song.Text); err != nil {
			return nil, lumerr.Wrap(err, "scanning song")
		}
		out = append(out, song)
	}
	return out, rows.Err()
}

// SaveSong inserts or updates a user song.
func (s *Store) SaveSong(song songs.Song) error {
	_, err := s.db.Exec(`
		INSERT INTO songs (id, number, title, text) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET number = excluded.number,
			title = excluded.title, text = excluded.text`,
		song.ID, song.Number, song.Title, song.Text)
	if err != nil {
		return lumerr.Wrap(err, "saving song")
	}
	return nil
}

// DeleteSong removes a user song by ID.
func (s *Store) DeleteSong(id string) error {
	res, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return lumerr.Wrap(err, "deleting song")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lumerr.NewNotFound("song", id)
	}
	return nil
}

// GetSong fetches one user song.
func (s *Store) GetSong(id string) (songs.Song, error) {
	song := songs.Song{BookID: songs.UserBookID}
	err := s.db.QueryRow(`SELECT id, number, title, text FROM songs WHERE id = ?`, id).
		Scan(&song.ID, &song.Number, &song.Title, &song.Text)
	if err == sql.ErrNoRows {
		return songs.Song{}, lumerr.NewNotFound("song", id)
	}
	if err != nil {
		return songs.Song{}, lumerr.Wrap(err, "fetching song")
	}
	return song, nil
}
