package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/migrations"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "database.sqlite"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func track(path, title, artist, album string) *library.Track {
	t := &library.Track{
		Path:        path,
		DisplayName: filepath.Base(path),
		Title:       library.StringPtr(title),
		Album:       library.StringPtr(album),
		ExternalID:  library.StringPtr("vid-" + title),
	}
	if artist != "" {
		t.Artists = library.SplitArtists(artist)
	}
	return t
}

func TestInsertAndByID(t *testing.T) {
	m := newTestManager(t)
	original := track("/music/a.flac", "Alpha", "X:Y", "First")

	id, err := m.Insert(original)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id == 0 || original.ID != id {
		t.Fatalf("id = %d, track.ID = %d", id, original.ID)
	}

	got, err := m.ByID(id)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if !library.Equate(original, got) {
		t.Errorf("stored %+v != %+v", got, original)
	}
	if got.DateAdded.IsZero() {
		t.Error("DateAdded should be set")
	}
}

func TestInsert_AbsentArtistsStoredAsNull(t *testing.T) {
	m := newTestManager(t)
	tr := track("/music/b.flac", "Beta", "", "")

	if _, err := m.Insert(tr); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	var artist sql.NullString
	if err := m.db.QueryRow("SELECT song_artist FROM songs WHERE id = ?", tr.ID).Scan(&artist); err != nil {
		t.Fatalf("query error = %v", err)
	}
	if artist.Valid {
		t.Errorf("song_artist = %q, want NULL", artist.String)
	}
}

func TestByID_NotFound(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.ByID(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	m := newTestManager(t)
	tr := track("/music/a.flac", "Alpha", "X", "First")
	if _, err := m.Insert(tr); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	tr.Album = library.StringPtr("Second")
	tr.Artists = []string{"Z"}
	if err := m.Update(tr); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := m.ByID(tr.ID)
	if !library.Equate(tr, got) {
		t.Errorf("updated %+v != %+v", got, tr)
	}

	missing := track("/music/none.flac", "None", "", "")
	missing.ID = 999
	if err := m.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchAndByTitle(t *testing.T) {
	m := newTestManager(t)
	for _, tr := range []*library.Track{
		track("/music/1.flac", "Blue Moon", "Sinatra", "Classics"),
		track("/music/2.flac", "Red Sky", "Moonlight Band", "Colors"),
		track("/music/3.flac", "Green", "Other", "Honeymoon"),
		track("/music/4.flac", "Yellow", "Nobody", "Nothing"),
	} {
		if _, err := m.Insert(tr); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	results, err := m.Search("moon")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Search(moon) returned %d songs, want 3", len(results))
	}

	byTitle, err := m.ByTitle("Yellow")
	if err != nil {
		t.Fatalf("ByTitle() error = %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Path != "/music/4.flac" {
		t.Errorf("ByTitle(Yellow) = %+v", byTitle)
	}

	all, err := m.QueryAll()
	if err != nil || len(all) != 4 {
		t.Errorf("QueryAll() = %d songs, err %v", len(all), err)
	}
	if all[0].Path != "/music/1.flac" {
		t.Errorf("QueryAll() not ordered by id: %s", all[0].Path)
	}
}

func TestSyncTagsAndRenamePath(t *testing.T) {
	m := newTestManager(t)
	tr := track("/music/old.flac", "Old", "A", "Al")
	if _, err := m.Insert(tr); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	ok, err := m.RenamePath("/music/old.flac", "/music/new.flac")
	if err != nil || !ok {
		t.Fatalf("RenamePath() = %v, %v", ok, err)
	}

	edited := track("/music/new.flac", "New", "B:C", "Al2")
	ok, err = m.SyncTags(edited)
	if err != nil || !ok {
		t.Fatalf("SyncTags() = %v, %v", ok, err)
	}

	got, err := m.ByPath("/music/new.flac")
	if err != nil {
		t.Fatalf("ByPath() error = %v", err)
	}
	if got.DisplayName != "new.flac" || *got.Title != "New" || len(got.Artists) != 2 {
		t.Errorf("got %+v", got)
	}
	if got.ExternalID == nil || *got.ExternalID != "vid-Old" {
		t.Errorf("ExternalID changed: %v", got.ExternalID)
	}

	ok, err = m.RenamePath("/music/missing.flac", "/music/x.flac")
	if err != nil || ok {
		t.Errorf("RenamePath(missing) = %v, %v", ok, err)
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	tr := track("/music/a.flac", "A", "", "")
	if _, err := m.Insert(tr); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := m.Remove(tr.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if count, _ := m.GetCount(); count != 0 {
		t.Errorf("GetCount() = %d, want 0", count)
	}
	if err := m.Remove(tr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMigrationsApplied(t *testing.T) {
	m := newTestManager(t)

	version, err := migrations.GetCurrentVersion(m.db)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	want := migrations.AllMigrations[len(migrations.AllMigrations)-1].Version
	if version != want {
		t.Errorf("version = %d, want %d", version, want)
	}

	// running again is a no-op
	if err := migrations.Run(m.db); err != nil {
		t.Errorf("second Run() error = %v", err)
	}
}
