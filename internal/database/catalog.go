// Package database keeps the song catalog.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/migrations"
)

// ErrNotFound is returned when no song matches
var ErrNotFound = errors.New("song not found")

const timestampLayout = "2006-01-02 15:04:05"

const selectColumns = `
	SELECT id, song_path, song_filename, song_title, song_artist, song_album,
	       song_genre, song_youtube_id, song_thumbnail_url, date_added
	FROM songs
`

// Manager stores catalog songs in SQLite
type Manager struct {
	db *sql.DB
}

// NewManager opens the catalog at dbPath, creating it and applying pending migrations
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	if err := migrations.InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Insert stores a new song and sets its ID
func (m *Manager) Insert(t *library.Track) (int64, error) {
	f := t.Persisted()
	if f.DateAdded.IsZero() {
		f.DateAdded = time.Now()
	}

	result, err := m.db.Exec(`
		INSERT INTO songs (
			song_path, song_filename, song_title, song_artist, song_album,
			song_genre, song_youtube_id, song_thumbnail_url, date_added
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		f.Path,
		f.FileName,
		nullString(f.Title),
		nullString(f.Artist),
		nullString(f.Album),
		nullString(f.Genre),
		nullString(f.ExternalID),
		nullString(f.ThumbnailURL),
		f.DateAdded.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert song: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get song id: %w", err)
	}

	t.ID = id
	t.DateAdded = f.DateAdded
	return id, nil
}

// Update rewrites every column of the song with t.ID
func (m *Manager) Update(t *library.Track) error {
	f := t.Persisted()

	result, err := m.db.Exec(`
		UPDATE songs SET
			song_path = ?, song_filename = ?, song_title = ?, song_artist = ?,
			song_album = ?, song_genre = ?, song_youtube_id = ?, song_thumbnail_url = ?
		WHERE id = ?
	`,
		f.Path,
		f.FileName,
		nullString(f.Title),
		nullString(f.Artist),
		nullString(f.Album),
		nullString(f.Genre),
		nullString(f.ExternalID),
		nullString(f.ThumbnailURL),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	return requireAffected(result)
}

// SyncTags updates title, artist and album of every row stored at t.Path.
// It reports whether a row matched.
func (m *Manager) SyncTags(t *library.Track) (bool, error) {
	f := t.Persisted()

	result, err := m.db.Exec(`
		UPDATE songs SET song_title = ?, song_artist = ?, song_album = ?
		WHERE song_path = ?
	`,
		nullString(f.Title),
		nullString(f.Artist),
		nullString(f.Album),
		f.Path,
	)
	if err != nil {
		return false, fmt.Errorf("failed to sync song tags: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RenamePath moves rows stored at oldPath to newPath.
// It reports whether a row matched.
func (m *Manager) RenamePath(oldPath, newPath string) (bool, error) {
	result, err := m.db.Exec(`
		UPDATE songs SET song_path = ?, song_filename = ?
		WHERE song_path = ?
	`, newPath, filepath.Base(newPath), oldPath)
	if err != nil {
		return false, fmt.Errorf("failed to rename song path: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// QueryAll returns every song ordered by id
func (m *Manager) QueryAll() ([]*library.Track, error) {
	rows, err := m.db.Query(selectColumns + " ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}
	defer rows.Close()

	return m.scanSongs(rows)
}

// ByID returns the song with the given id
func (m *Manager) ByID(id int64) (*library.Track, error) {
	rows, err := m.db.Query(selectColumns+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load song: %w", err)
	}
	defer rows.Close()

	return m.scanOne(rows)
}

// ByPath returns the first song stored at path
func (m *Manager) ByPath(path string) (*library.Track, error) {
	rows, err := m.db.Query(selectColumns+" WHERE song_path = ? ORDER BY id LIMIT 1", path)
	if err != nil {
		return nil, fmt.Errorf("failed to load song: %w", err)
	}
	defer rows.Close()

	return m.scanOne(rows)
}

// ByTitle returns songs whose title matches exactly
func (m *Manager) ByTitle(title string) ([]*library.Track, error) {
	rows, err := m.db.Query(selectColumns+" WHERE song_title = ? ORDER BY id", title)
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}
	defer rows.Close()

	return m.scanSongs(rows)
}

// Search returns songs whose title, artist or album contains term
func (m *Manager) Search(term string) ([]*library.Track, error) {
	pattern := "%" + term + "%"

	rows, err := m.db.Query(selectColumns+`
		WHERE song_title LIKE ? OR song_artist LIKE ? OR song_album LIKE ?
		ORDER BY id
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	defer rows.Close()

	return m.scanSongs(rows)
}

// Remove deletes the song with the given id
func (m *Manager) Remove(id int64) error {
	result, err := m.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}
	return requireAffected(result)
}

// GetCount returns the number of songs
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Manager) scanOne(rows *sql.Rows) (*library.Track, error) {
	songs, err := m.scanSongs(rows)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, ErrNotFound
	}
	return songs[0], nil
}

func (m *Manager) scanSongs(rows *sql.Rows) ([]*library.Track, error) {
	var songs []*library.Track

	for rows.Next() {
		var id int64
		var path, fileName string
		var title, artist, album, genre, youtubeID, thumbnailURL sql.NullString
		var dateAdded sql.NullString

		err := rows.Scan(
			&id,
			&path,
			&fileName,
			&title,
			&artist,
			&album,
			&genre,
			&youtubeID,
			&thumbnailURL,
			&dateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}

		songs = append(songs, library.FromPersisted(library.PersistedFields{
			ID:           id,
			Path:         path,
			FileName:     fileName,
			Title:        stringPtr(title),
			Artist:       stringPtr(artist),
			Album:        stringPtr(album),
			Genre:        stringPtr(genre),
			ExternalID:   stringPtr(youtubeID),
			ThumbnailURL: stringPtr(thumbnailURL),
			DateAdded:    parseTimestamp(dateAdded.String),
		}))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate songs: %w", err)
	}

	return songs, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// parseTimestamp reads UTC timestamps, falling back to RFC3339
func parseTimestamp(value string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, value, time.UTC); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
