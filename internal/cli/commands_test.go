package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/music-manager/internal/download"
	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/tagstore"
)

// memStore keeps tag blocks in memory and renames them with the file
type memStore struct {
	files map[string]library.Tags
}

func (s *memStore) Read(path string) (library.Tags, error) {
	tags, ok := s.files[path]
	if !ok {
		return nil, errors.New("no tag block")
	}
	return tags, nil
}

func (s *memStore) Write(path string, tags library.Tags) error {
	current, ok := s.files[path]
	if !ok {
		return errors.New("no such file")
	}
	for k, v := range tags {
		current[k] = v
	}
	return nil
}

func (s *memStore) Rename(oldPath, newPath string) error {
	s.files[newPath] = s.files[oldPath]
	delete(s.files, oldPath)
	return nil
}

func (s *memStore) ListDirectory(string) ([]library.Entry, error) {
	return nil, nil
}

func TestAskDetails_Defaults(t *testing.T) {
	env, _ := newTestEnv(t, "\n\nArtist A:Artist B\n")
	r := download.SearchResult{ID: "abc", Title: "Video Title", Channel: "Channel"}
	track := &library.Track{Path: "/music/Video Title.flac", DisplayName: "Video Title.flac"}

	d, err := env.askDetails(r, track)
	if err != nil {
		t.Fatalf("askDetails() error = %v", err)
	}

	want := trackDetails{
		FileName: "Video Title.flac",
		Title:    "Video Title",
		Artist:   "Artist A:Artist B",
		Album:    UnknownAlbum,
	}
	if d != want {
		t.Errorf("askDetails() = %+v, want %+v", d, want)
	}
}

func TestAskDetails_PrefersExistingTags(t *testing.T) {
	env, _ := newTestEnv(t, "")
	r := download.SearchResult{Title: "Video Title", Channel: "Channel"}
	track := song("/music/x.flac", "Tagged", "Someone", "Record")

	d, err := env.askDetails(r, track)
	if err != nil {
		t.Fatalf("askDetails() error = %v", err)
	}
	if d.Title != "Tagged" || d.Artist != "Someone" || d.Album != "Record" {
		t.Errorf("askDetails() = %+v", d)
	}
}

func TestApplyDetails(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantPath string
	}{
		{"rename without extension", "Better Name", "/music/Better Name.flac"},
		{"same stem keeps file", "Video Title", "/music/Video Title.flac"},
		{"same name keeps file", "Video Title.flac", "/music/Video Title.flac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{files: map[string]library.Tags{
				"/music/Video Title.flac": {library.TagTitle: {"Video Title"}},
			}}
			mgr := library.NewManager(store, store)
			track, err := mgr.LoadFromFile("/music/Video Title.flac")
			if err != nil {
				t.Fatal(err)
			}

			err = applyDetails(mgr, track, trackDetails{
				FileName: tt.fileName,
				Title:    "Song",
				Artist:   "A:B",
				Album:    "Album",
			})
			if err != nil {
				t.Fatalf("applyDetails() error = %v", err)
			}

			if track.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", track.Path, tt.wantPath)
			}
			tags := store.files[tt.wantPath]
			if got, _ := tags.First(library.TagTitle); got != "Song" {
				t.Errorf("TITLE = %q, want Song", got)
			}
			if got := tags.All(library.TagArtist); len(got) != 2 || got[1] != "B" {
				t.Errorf("ARTIST = %v, want [A B]", got)
			}
		})
	}
}

func TestCatalogTrack_InsertThenUpdate(t *testing.T) {
	env, _ := newTestEnv(t, "")
	catalog := openTestCatalog(t, env)
	r := download.SearchResult{ID: "vid1", Thumbnail: "https://img.test/1.webp"}

	first := song("/music/a.flac", "First", "X", "Album")
	if err := catalogTrack(catalog, first, r); err != nil {
		t.Fatalf("catalogTrack() error = %v", err)
	}
	if first.ID == 0 {
		t.Fatal("insert should assign an id")
	}

	second := song("/music/a.flac", "Second", "X", "Album")
	if err := catalogTrack(catalog, second, r); err != nil {
		t.Fatalf("catalogTrack() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ID = %d, want %d", second.ID, first.ID)
	}

	count, _ := catalog.GetCount()
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	stored, err := catalog.ByID(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *stored.Title != "Second" || *stored.ExternalID != "vid1" || *stored.ThumbnailURL != r.Thumbnail {
		t.Errorf("stored = %+v", stored)
	}
}

// writeFLAC writes a FLAC stream holding only an empty STREAMINFO block
func writeFLAC(t *testing.T, dir, name string) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write([]byte{0x80, 0x00, 0x00, 34})
	buf.Write(make([]byte, 34))

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write flac: %v", err)
	}
	return path
}

func TestEmbedThumbnail_SkipsExistingCover(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/jpeg")
		jpeg.Encode(w, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil)
	}))
	defer server.Close()

	path := writeFLAC(t, t.TempDir(), "song.flac")
	store := tagstore.NewFLAC()

	if err := embedThumbnail(context.Background(), store, path, server.URL); err != nil {
		t.Fatalf("embedThumbnail() error = %v", err)
	}
	if has, err := store.HasCover(path); err != nil || !has {
		t.Fatalf("HasCover() = %v, %v", has, err)
	}

	if err := embedThumbnail(context.Background(), store, path, server.URL); err != nil {
		t.Fatalf("second embedThumbnail() error = %v", err)
	}
	if hits != 1 {
		t.Errorf("thumbnail fetched %d times, want 1", hits)
	}
}

func TestRemoveSongs(t *testing.T) {
	env, _ := newTestEnv(t, "")
	catalog := openTestCatalog(t, env)

	present := filepath.Join(env.MusicDir, "present.flac")
	touch(t, present)
	missing := filepath.Join(env.MusicDir, "missing.flac")

	var tracks []*library.Track
	for _, p := range []string{present, missing} {
		tr := song(p, filepath.Base(p), "X", "Y")
		if _, err := catalog.Insert(tr); err != nil {
			t.Fatal(err)
		}
		tracks = append(tracks, tr)
	}

	removed, err := removeSongs(catalog, tracks, false)
	if err != nil {
		t.Fatalf("removeSongs() error = %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("removed %d, want 2", len(removed))
	}
	if _, err := os.Stat(present); !errors.Is(err, os.ErrNotExist) {
		t.Error("file should be deleted")
	}

	count, _ := catalog.GetCount()
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	// already removed
	if _, err := removeSongs(catalog, tracks[:1], false); err == nil {
		t.Error("expected error removing an unknown id")
	}
}

func TestRemoveSongs_KeepFiles(t *testing.T) {
	env, _ := newTestEnv(t, "")
	catalog := openTestCatalog(t, env)

	path := filepath.Join(env.MusicDir, "keep.flac")
	touch(t, path)
	tr := song(path, "Keep", "X", "Y")
	if _, err := catalog.Insert(tr); err != nil {
		t.Fatal(err)
	}

	if _, err := removeSongs(catalog, []*library.Track{tr}, true); err != nil {
		t.Fatalf("removeSongs() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should be kept: %v", err)
	}
}

func TestRemove_ByTitleSelection(t *testing.T) {
	env, _ := newTestEnv(t, "2\n")
	catalog := openTestCatalog(t, env)

	for _, title := range []string{"Moon One", "Moon Two", "Sun"} {
		if _, err := catalog.Insert(song(filepath.Join(env.MusicDir, title+".flac"), title, "X", "Y")); err != nil {
			t.Fatal(err)
		}
	}

	if err := Remove(env, RemoveOptions{Title: "Moon"}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	remaining, _ := catalog.QueryAll()
	if len(remaining) != 2 || *remaining[0].Title != "Moon One" || *remaining[1].Title != "Sun" {
		t.Errorf("remaining = %d songs", len(remaining))
	}
}

func TestRemove_RequiresOneSelector(t *testing.T) {
	env, _ := newTestEnv(t, "")

	if err := Remove(env, RemoveOptions{}); err == nil {
		t.Error("expected error without --id or --title")
	}
	if err := Remove(env, RemoveOptions{ID: 1, Title: "x"}); err == nil {
		t.Error("expected error with both --id and --title")
	}
}

func TestImportDir(t *testing.T) {
	env, _ := newTestEnv(t, "")
	catalog := openTestCatalog(t, env)
	dir := filepath.Join(env.MusicDir, "library")

	known := filepath.Join(dir, "known.flac")
	for _, name := range []string{"known.flac", "new.mp3", "notes.txt", "sub/deep.opus", "broken.flac"} {
		touch(t, filepath.Join(dir, name))
	}
	if _, err := catalog.Insert(song(known, "Known", "X", "Y")); err != nil {
		t.Fatal(err)
	}

	read := func(path string) (library.Tags, error) {
		if strings.HasSuffix(path, "broken.flac") {
			return nil, errors.New("corrupt")
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return library.Tags{library.TagTitle: {strings.ToUpper(name)}}, nil
	}

	stats, err := importDir(catalog, dir, read)
	if err != nil {
		t.Fatalf("importDir() error = %v", err)
	}

	want := ImportStats{Added: 2, Skipped: 1, Failed: 1}
	if stats != want {
		t.Errorf("importDir() = %+v, want %+v", stats, want)
	}

	deep, err := catalog.ByPath(filepath.Join(dir, "sub", "deep.opus"))
	if err != nil {
		t.Fatalf("ByPath() error = %v", err)
	}
	if *deep.Title != "DEEP" {
		t.Errorf("title = %q, want DEEP", *deep.Title)
	}

	// a second scan finds nothing new
	stats, err = importDir(catalog, dir, read)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Added != 0 || stats.Skipped != 3 {
		t.Errorf("rescan = %+v", stats)
	}
}

func TestKeybindsInitAndCheck(t *testing.T) {
	env, out := newTestEnv(t, "")

	if err := KeybindsInit(env, false); err != nil {
		t.Fatalf("KeybindsInit() error = %v", err)
	}
	if err := KeybindsInit(env, false); err == nil {
		t.Error("second init without force should fail")
	}
	if err := KeybindsInit(env, true); err != nil {
		t.Errorf("forced init error = %v", err)
	}

	if err := KeybindsCheck(env); err != nil {
		t.Errorf("KeybindsCheck() on generated file error = %v\n%s", err, out.String())
	}
}

func TestKeybindsCheck_Invalid(t *testing.T) {
	env, _ := newTestEnv(t, "")
	data := `{"version": "1.0", "bindings": {"not_an_action": "x"}}`
	if err := os.WriteFile(env.KeybindsPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := KeybindsCheck(env); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestCheckKeybinds_MissingFileUsesDefaults(t *testing.T) {
	result, err := checkKeybinds(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("checkKeybinds() error = %v", err)
	}
	if result.HasErrors() {
		t.Errorf("defaults should validate: %s", result.String())
	}
}

func TestWriteBindings(t *testing.T) {
	var sb strings.Builder
	if err := writeBindings(&sb, keybinds.DefaultKeymap()); err != nil {
		t.Fatal(err)
	}

	got := sb.String()
	for _, want := range []string{"[dir_list]", "[log_viewer]", "[text_input]", "ctrl+c, q"} {
		if !strings.Contains(got, want) {
			t.Errorf("bindings missing %q:\n%s", want, got)
		}
	}
}
