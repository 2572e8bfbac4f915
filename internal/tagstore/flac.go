// Package tagstore reads and writes embedded tag blocks.
package tagstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/studiowebux/music-manager/internal/library"
)

// FLAC stores tags in the Vorbis comment block of FLAC files
type FLAC struct{}

// NewFLAC creates a FLAC tag store
func NewFLAC() *FLAC {
	return &FLAC{}
}

// Read returns every Vorbis comment, keys upper-cased.
// A FLAC file without a comment block yields empty tags.
func (s *FLAC) Read(path string) (library.Tags, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	cmts, _, err := findComments(f)
	if err != nil {
		return nil, err
	}

	tags := library.Tags{}
	if cmts == nil {
		return tags, nil
	}

	for _, c := range cmts.Comments {
		key, value, ok := splitComment(c)
		if !ok {
			continue
		}
		tags[key] = append(tags[key], value)
	}
	return tags, nil
}

// Write replaces the given keys in the Vorbis comment block, keeping all others.
// An empty value list removes the key.
func (s *FLAC) Write(path string, tags library.Tags) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	cmts, idx, err := findComments(f)
	if err != nil {
		return err
	}
	if cmts == nil {
		cmts = flacvorbis.New()
	}

	replaced := make(map[string]bool, len(tags))
	for key := range tags {
		replaced[strings.ToUpper(key)] = true
	}

	kept := make([]string, 0, len(cmts.Comments))
	for _, c := range cmts.Comments {
		key, _, ok := splitComment(c)
		if ok && replaced[key] {
			continue
		}
		kept = append(kept, c)
	}
	cmts.Comments = kept

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range tags[key] {
			if err := cmts.Add(strings.ToUpper(key), value); err != nil {
				return fmt.Errorf("failed to add %s: %w", key, err)
			}
		}
	}

	cmtsMeta := cmts.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &cmtsMeta
	} else {
		f.Meta = append(f.Meta, &cmtsMeta)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// EmbedCover replaces any embedded picture with a front cover
func (s *FLAC) EmbedCover(path string, image []byte, mime string) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front cover", image, mime)
	if err != nil {
		return fmt.Errorf("failed to build picture block: %w", err)
	}

	meta := make([]*flac.MetaDataBlock, 0, len(f.Meta)+1)
	for _, block := range f.Meta {
		if block.Type == flac.Picture {
			continue
		}
		meta = append(meta, block)
	}
	picMeta := pic.Marshal()
	f.Meta = append(meta, &picMeta)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// HasCover reports whether the file embeds a picture
func (s *FLAC) HasCover(path string) (bool, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to parse FLAC file: %w", err)
	}
	for _, block := range f.Meta {
		if block.Type == flac.Picture {
			return true, nil
		}
	}
	return false, nil
}

func findComments(f *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for idx, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, -1, fmt.Errorf("failed to parse vorbis comment: %w", err)
			}
			return cmts, idx, nil
		}
	}
	return nil, -1, nil
}

func splitComment(c string) (string, string, bool) {
	key, value, ok := strings.Cut(c, "=")
	if !ok {
		return "", "", false
	}
	return strings.ToUpper(key), value, true
}
