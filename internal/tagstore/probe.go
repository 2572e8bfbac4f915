package tagstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/studiowebux/music-manager/internal/library"
)

// ErrReadOnly is returned when writing tags to a format only the prober understands
var ErrReadOnly = errors.New("tag writing is only supported for FLAC files")

// Probe reads common metadata from any format dhowden/tag understands
func Probe(path string) (library.Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	tags := library.Tags{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			tags[key] = []string{value}
		}
	}

	set(library.TagTitle, m.Title())
	set(library.TagAlbum, m.Album())
	set(library.TagGenre, m.Genre())

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	if artists := library.SplitArtists(artist); len(artists) > 0 {
		tags[library.TagArtist] = artists
	}

	return tags, nil
}

// Auto dispatches FLAC files to the FLAC store and probes everything else read-only
type Auto struct {
	flac *FLAC
}

// NewAuto creates a format-dispatching tag store
func NewAuto() *Auto {
	return &Auto{flac: NewFLAC()}
}

// Read implements library.TagStore
func (s *Auto) Read(path string) (library.Tags, error) {
	if isFLAC(path) {
		return s.flac.Read(path)
	}
	return Probe(path)
}

// Write implements library.TagStore
func (s *Auto) Write(path string, tags library.Tags) error {
	if isFLAC(path) {
		return s.flac.Write(path, tags)
	}
	return ErrReadOnly
}

// FLAC returns the underlying FLAC store
func (s *Auto) FLAC() *FLAC {
	return s.flac
}

func isFLAC(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".flac")
}
