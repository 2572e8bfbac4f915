package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
)

// RemoveOptions configures the remove command. Exactly one of ID and Title is set.
type RemoveOptions struct {
	ID        int64
	Title     string
	KeepFiles bool
}

// songRemover is the part of the catalog used by remove
type songRemover interface {
	Remove(id int64) error
}

// Remove deletes songs from the catalog and their files from disk
func Remove(env *Env, opts RemoveOptions) error {
	if (opts.ID > 0) == (opts.Title != "") {
		return fmt.Errorf("specify exactly one of --id or --title")
	}

	catalog, err := env.OpenCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	var targets []*library.Track
	if opts.ID > 0 {
		t, err := catalog.ByID(opts.ID)
		if err != nil {
			return fmt.Errorf("song %d: %w", opts.ID, err)
		}
		targets = []*library.Track{t}
	} else {
		matches, err := catalog.Search(opts.Title)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no songs match '%s'", opts.Title)
		}

		for i, t := range matches {
			fmt.Fprintf(env.Err, "%d. %s\n", i+1, songLine(t))
		}
		answer, err := env.Prompt.Ask("Songs to remove (comma separated numbers)", "")
		if err != nil {
			return err
		}
		indexes, err := parseSelection(answer, len(matches))
		if err != nil {
			return err
		}
		for _, i := range indexes {
			targets = append(targets, matches[i])
		}
	}

	removed, err := removeSongs(catalog, targets, opts.KeepFiles)
	for _, t := range removed {
		env.success("Removed %s", songLine(t))
	}
	return err
}

// removeSongs removes each catalog row, then its file unless keepFiles is set.
// A missing file is not an error. Processing stops at the first failure.
func removeSongs(catalog songRemover, tracks []*library.Track, keepFiles bool) ([]*library.Track, error) {
	log := logging.For(logging.TargetCatalog)

	var removed []*library.Track
	for _, t := range tracks {
		if err := catalog.Remove(t.ID); err != nil {
			return removed, fmt.Errorf("failed to remove song %d: %w", t.ID, err)
		}
		log.WithField("id", t.ID).Infof("Removed %s", t.Path)

		if !keepFiles {
			if err := os.Remove(t.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return removed, fmt.Errorf("failed to delete %s: %w", t.Path, err)
			}
		}
		removed = append(removed, t)
	}
	return removed, nil
}
