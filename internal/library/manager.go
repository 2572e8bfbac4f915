package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/music-manager/internal/logging"
)

// Manager loads, edits and persists tracks through a tag store and a filesystem
type Manager struct {
	store TagStore
	fs    FileSystem
	log   *logrus.Entry
}

// NewManager creates a track manager
func NewManager(store TagStore, fs FileSystem) *Manager {
	return &Manager{
		store: store,
		fs:    fs,
		log:   logging.For(logging.TargetTrackEdit),
	}
}

// FileSystem returns the filesystem the manager renames through
func (m *Manager) FileSystem() FileSystem {
	return m.fs
}

// LoadFromFile reads a track from the tag block of a file
func (m *Manager) LoadFromFile(path string) (*Track, error) {
	tags, err := m.store.Read(path)
	if err != nil {
		return nil, &TagReadError{Path: path, Err: err}
	}

	t := &Track{
		Path:        path,
		DisplayName: filepath.Base(path),
	}
	t.applyTags(tags)

	m.log.Debugf("Loaded %s", path)
	return t, nil
}

// SetField applies an edit to one field.
// Renaming the display name renames the file and re-reads its tags; when the
// re-read fails the new path is kept and the previous tag values stay in memory.
func (m *Manager) SetField(t *Track, field Field, value string) error {
	switch field {
	case FieldDisplayName:
		return m.rename(t, value)
	case FieldTitle:
		t.Title = &value
	case FieldArtists:
		t.Artists = SplitArtists(value)
	case FieldAlbum:
		t.Album = &value
	default:
		return fmt.Errorf("unknown field %d", int(field))
	}

	m.log.Infof("Set %s to: %s", field, value)
	return nil
}

func (m *Manager) rename(t *Track, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" || strings.ContainsRune(newName, filepath.Separator) {
		return &RenameError{From: t.Path, To: newName, Err: fmt.Errorf("invalid file name '%s'", newName)}
	}

	// Keep the original extension if none given
	if filepath.Ext(newName) == "" {
		newName += filepath.Ext(t.Path)
	}

	newPath := filepath.Join(filepath.Dir(t.Path), newName)
	if newPath == t.Path {
		return nil
	}

	if err := m.fs.Rename(t.Path, newPath); err != nil {
		m.log.Errorf("File renaming failed: %v", err)
		return &RenameError{From: t.Path, To: newPath, Err: err}
	}

	t.Path = newPath
	t.DisplayName = newName
	m.log.Infof("Set filename to: %s", newName)

	tags, err := m.store.Read(newPath)
	if err != nil {
		m.log.Errorf("Error reading tags after rename: %v", err)
		return &TagReadError{Path: newPath, Err: err}
	}
	t.applyTags(tags)

	return nil
}

// PersistTags writes title, artists and album into the file's tag block
func (m *Manager) PersistTags(t *Track) error {
	if err := m.store.Write(t.Path, t.Tags()); err != nil {
		return &TagWriteError{Path: t.Path, Err: err}
	}
	m.log.Infof("Wrote tags to %s", t.DisplayName)
	return nil
}
