package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add search indices on songs",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(song_title);
			CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(song_artist);
			CREATE INDEX IF NOT EXISTS idx_songs_album ON songs(song_album);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_songs_title;
			DROP INDEX IF EXISTS idx_songs_artist;
			DROP INDEX IF EXISTS idx_songs_album;
		`,
	},
	{
		Version: 2,
		Name:    "Add path and video id indices",
		Up: `
			-- Paths are looked up when the editor renames or saves a file
			CREATE INDEX IF NOT EXISTS idx_songs_path ON songs(song_path);
			CREATE INDEX IF NOT EXISTS idx_songs_youtube_id ON songs(song_youtube_id);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_songs_path;
			DROP INDEX IF EXISTS idx_songs_youtube_id;
		`,
	},
}

// InitSchema creates all tables required by the catalog
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		song_path TEXT NOT NULL,
		song_filename TEXT NOT NULL,
		song_title TEXT,
		song_artist TEXT,
		song_album TEXT,
		song_genre TEXT,
		song_youtube_id TEXT,
		song_thumbnail_url TEXT,
		date_added DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run applies all pending migrations
func Run(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
