package tui

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
)

const testDir = "/music"

// memStore is an in-memory TagStore keyed by path
type memStore struct {
	files    map[string]library.Tags
	readErr  map[string]error
	writeErr error
	writes   int
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string]library.Tags), readErr: make(map[string]error)}
}

func (s *memStore) Read(path string) (library.Tags, error) {
	if err := s.readErr[path]; err != nil {
		return nil, err
	}
	tags, ok := s.files[path]
	if !ok {
		return nil, errors.New("no tag block")
	}
	out := library.Tags{}
	for k, v := range tags {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (s *memStore) Write(path string, tags library.Tags) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	current, ok := s.files[path]
	if !ok {
		return errors.New("no such file")
	}
	for k, v := range tags {
		if len(v) == 0 {
			delete(current, k)
			continue
		}
		current[k] = append([]string(nil), v...)
	}
	s.writes++
	return nil
}

// memFS lists and renames the files held by a memStore
type memFS struct {
	store   *memStore
	listErr error
}

func (fs *memFS) Rename(oldPath, newPath string) error {
	if _, exists := fs.store.files[newPath]; exists {
		return errors.New("exists")
	}
	fs.store.files[newPath] = fs.store.files[oldPath]
	delete(fs.store.files, oldPath)
	return nil
}

func (fs *memFS) ListDirectory(dir string) ([]library.Entry, error) {
	if fs.listErr != nil {
		return nil, fs.listErr
	}
	var entries []library.Entry
	for path := range fs.store.files {
		if filepath.Dir(path) == dir {
			entries = append(entries, library.Entry{Name: filepath.Base(path), Path: path})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// fakeCatalog records the catalog calls made by the editor
type fakeCatalog struct {
	synced  []string
	renames [][2]string
	err     error
}

func (c *fakeCatalog) SyncTags(t *library.Track) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.synced = append(c.synced, t.Path)
	return true, nil
}

func (c *fakeCatalog) RenamePath(oldPath, newPath string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.renames = append(c.renames, [2]string{oldPath, newPath})
	return true, nil
}

type testEditor struct {
	*Editor
	store   *memStore
	fs      *memFS
	catalog *fakeCatalog
	paste   string
}

// CreateTestEditor creates an Editor over an in-memory directory holding names
func CreateTestEditor(t *testing.T, names ...string) *testEditor {
	t.Helper()
	return CreateTestEditorWithKeymap(t, keybinds.DefaultKeymap(), names...)
}

// CreateTestEditorWithKeymap creates a test editor using keymap
func CreateTestEditorWithKeymap(t *testing.T, keymap keybinds.Keymap, names ...string) *testEditor {
	t.Helper()

	store := newMemStore()
	for _, name := range names {
		addTrack(store, name)
	}

	te := &testEditor{
		store:   store,
		fs:      &memFS{store: store},
		catalog: &fakeCatalog{},
	}

	editor, err := NewEditor(library.NewManager(store, te.fs), EditorOptions{
		Dir:       testDir,
		Keymap:    keymap,
		Catalog:   te.catalog,
		Clipboard: func() (string, error) { return te.paste, nil },
		Logs:      logging.NewRing(50),
	})
	if err != nil {
		t.Fatalf("Failed to create test editor: %v", err)
	}

	te.Editor = editor
	return te
}

func addTrack(store *memStore, name string) string {
	path := filepath.Join(testDir, name)
	store.files[path] = library.Tags{
		library.TagTitle: {strings.TrimSuffix(name, filepath.Ext(name))},
	}
	return path
}

// press dispatches keys in order, failing on any error
func (te *testEditor) press(t *testing.T, keys ...string) StepResult {
	t.Helper()

	result := Continue
	for _, key := range keys {
		var err error
		result, err = te.Dispatch(keyPress(key))
		if err != nil {
			t.Fatalf("Dispatch(%q) error = %v", key, err)
		}
	}
	return result
}

// typeText dispatches one key event per character
func (te *testEditor) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		te.press(t, string(r))
	}
}

func keyPress(key string) KeyEvent {
	ev := KeyEvent{Key: key}
	if len([]rune(key)) == 1 {
		ev.Text = key
	}
	return ev
}

// AssertModelField is a generic helper for checking field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
