// Package library holds the in-memory track record and the operations that
// keep it synchronized with the file's tag block.
package library

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ArtistSeparator joins artists in display lines and persisted rows
const ArtistSeparator = ":"

// None is shown for absent values
const None = "None"

// Field identifies an editable field. Values match the display line order.
type Field int

const (
	FieldDisplayName Field = iota
	FieldTitle
	FieldArtists
	FieldAlbum
)

// Fields lists the editable fields in display order
var Fields = []Field{FieldDisplayName, FieldTitle, FieldArtists, FieldAlbum}

func (f Field) String() string {
	switch f {
	case FieldDisplayName:
		return "file name"
	case FieldTitle:
		return "title"
	case FieldArtists:
		return "artists"
	case FieldAlbum:
		return "album"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// FieldAt returns the field shown at a display line index
func FieldAt(index int) (Field, bool) {
	if index < 0 || index >= len(Fields) {
		return 0, false
	}
	return Fields[index], true
}

// Track is the editable metadata of one file
type Track struct {
	ID           int64
	Path         string
	DisplayName  string
	Title        *string
	Artists      []string
	Album        *string
	Genre        *string
	ExternalID   *string
	ThumbnailURL *string
	DateAdded    time.Time
}

// PersistedFields is the scalar form of a track as stored in the catalog
type PersistedFields struct {
	ID           int64
	Path         string
	FileName     string
	Title        *string
	Artist       *string
	Album        *string
	Genre        *string
	ExternalID   *string
	ThumbnailURL *string
	DateAdded    time.Time
}

// FromPersisted rebuilds a track from catalog fields
func FromPersisted(fields PersistedFields) *Track {
	t := &Track{
		ID:           fields.ID,
		Path:         fields.Path,
		DisplayName:  fields.FileName,
		Title:        copyString(fields.Title),
		Album:        copyString(fields.Album),
		Genre:        copyString(fields.Genre),
		ExternalID:   copyString(fields.ExternalID),
		ThumbnailURL: copyString(fields.ThumbnailURL),
		DateAdded:    fields.DateAdded,
	}
	if t.DisplayName == "" && t.Path != "" {
		t.DisplayName = filepath.Base(t.Path)
	}
	if fields.Artist != nil {
		t.Artists = SplitArtists(*fields.Artist)
	}
	return t
}

// Persisted returns the scalar fields stored in the catalog
func (t *Track) Persisted() PersistedFields {
	var artist *string
	if len(t.Artists) > 0 {
		joined := strings.Join(t.Artists, ArtistSeparator)
		artist = &joined
	}
	return PersistedFields{
		ID:           t.ID,
		Path:         t.Path,
		FileName:     t.DisplayName,
		Title:        copyString(t.Title),
		Artist:       artist,
		Album:        copyString(t.Album),
		Genre:        copyString(t.Genre),
		ExternalID:   copyString(t.ExternalID),
		ThumbnailURL: copyString(t.ThumbnailURL),
		DateAdded:    t.DateAdded,
	}
}

// DisplayLines returns the labelled field lines in fixed order
func (t *Track) DisplayLines() []string {
	artists := None
	if len(t.Artists) > 0 {
		artists = strings.Join(t.Artists, ArtistSeparator)
	}
	return []string{
		"File name: " + t.DisplayName,
		"Title: " + valueOr(t.Title, None),
		"Artists: " + artists,
		"Album: " + valueOr(t.Album, None),
	}
}

// Tags returns the editable fields as a tag block
func (t *Track) Tags() Tags {
	tags := Tags{
		TagTitle:  optionalValues(t.Title),
		TagArtist: append([]string{}, t.Artists...),
		TagAlbum:  optionalValues(t.Album),
	}
	return tags
}

// applyTags replaces title, artists and album from a tag block
func (t *Track) applyTags(tags Tags) {
	t.Title = nil
	if v, ok := tags.First(TagTitle); ok {
		t.Title = &v
	}

	t.Artists = nil
	if values := tags.All(TagArtist); len(values) > 0 {
		t.Artists = append([]string{}, values...)
	}

	t.Album = nil
	if v, ok := tags.First(TagAlbum); ok {
		t.Album = &v
	}

	if t.Genre == nil {
		if v, ok := tags.First(TagGenre); ok {
			t.Genre = &v
		}
	}
}

// Equate compares every user-visible field
func Equate(a, b *Track) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalString(a.Title, b.Title) &&
		slices.Equal(a.Artists, b.Artists) &&
		equalString(a.Album, b.Album) &&
		equalString(a.Genre, b.Genre) &&
		equalString(a.ExternalID, b.ExternalID) &&
		equalString(a.ThumbnailURL, b.ThumbnailURL) &&
		a.DisplayName == b.DisplayName &&
		a.Path == b.Path
}

// SplitArtists splits on ':' dropping empty tokens
func SplitArtists(value string) []string {
	var artists []string
	for _, a := range strings.Split(value, ArtistSeparator) {
		if a != "" {
			artists = append(artists, a)
		}
	}
	return artists
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func optionalValues(s *string) []string {
	if s == nil {
		return []string{}
	}
	return []string{*s}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
