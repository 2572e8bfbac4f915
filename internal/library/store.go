package library

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tag keys used by the editor
const (
	TagTitle  = "TITLE"
	TagArtist = "ARTIST"
	TagAlbum  = "ALBUM"
	TagGenre  = "GENRE"
)

// Tags is a tag block: upper-case key to ordered values
type Tags map[string][]string

// First returns the first value of key
func (t Tags) First(key string) (string, bool) {
	values := t[strings.ToUpper(key)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// All returns every value of key
func (t Tags) All(key string) []string {
	return t[strings.ToUpper(key)]
}

// TagStore reads and writes the embedded tag block of a file.
// Write replaces only the keys present in tags; an empty value list removes the key.
type TagStore interface {
	Read(path string) (Tags, error)
	Write(path string, tags Tags) error
}

// Entry is a browsable file
type Entry struct {
	Name string
	Path string
}

// FileSystem is the file capability the editor needs
type FileSystem interface {
	Rename(oldPath, newPath string) error
	ListDirectory(dir string) ([]Entry, error)
}

// OSFileSystem implements FileSystem on the local disk
type OSFileSystem struct {
	// Extensions filters listed files, e.g. ".flac". Empty lists every regular file.
	Extensions []string
}

// NewOSFileSystem creates a filesystem listing files with the given extensions
func NewOSFileSystem(extensions ...string) *OSFileSystem {
	return &OSFileSystem{Extensions: extensions}
}

// Rename renames a file, refusing to overwrite an existing one
func (fs *OSFileSystem) Rename(oldPath, newPath string) error {
	if _, err := os.Stat(newPath); err == nil {
		return &os.PathError{Op: "rename", Path: newPath, Err: os.ErrExist}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}

// ListDirectory lists matching regular files in dir, sorted by name
func (fs *OSFileSystem) ListDirectory(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if !fs.matches(de.Name()) {
			continue
		}
		entries = append(entries, Entry{
			Name: de.Name(),
			Path: filepath.Join(dir, de.Name()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (fs *OSFileSystem) matches(name string) bool {
	if len(fs.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range fs.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
