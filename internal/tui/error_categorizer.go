package tui

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/tagstore"
)

// categorizeError turns an editor error into a short, actionable status line.
// The cause is kept so the log and the status bar agree.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrEmptyListing) {
		return "No tracks in this directory - check the configured extensions"
	}

	var renameErr *library.RenameError
	if errors.As(err, &renameErr) {
		return categorizeRenameError(renameErr)
	}

	var readErr *library.TagReadError
	if errors.As(err, &readErr) {
		if errors.Is(err, os.ErrNotExist) {
			return "Track disappeared - " + filepath.Base(readErr.Path) + " was moved or deleted"
		}
		return "Could not read tags from " + filepath.Base(readErr.Path) + ": " + causeOf(readErr.Err)
	}

	var writeErr *library.TagWriteError
	if errors.As(err, &writeErr) {
		switch {
		case errors.Is(err, tagstore.ErrReadOnly):
			return "Tags can only be saved to FLAC files"
		case errors.Is(err, os.ErrPermission):
			return "Permission denied writing " + filepath.Base(writeErr.Path)
		}
		return "Could not save tags to " + filepath.Base(writeErr.Path) + ": " + causeOf(writeErr.Err)
	}

	var listErr *library.ListError
	if errors.As(err, &listErr) {
		if errors.Is(err, os.ErrNotExist) {
			return "Directory " + listErr.Dir + " no longer exists"
		}
		return "Could not list " + listErr.Dir + ": " + causeOf(listErr.Err)
	}

	return err.Error()
}

func categorizeRenameError(e *library.RenameError) string {
	name := filepath.Base(e.To)
	switch {
	case errors.Is(e.Err, os.ErrExist):
		return "Rename failed - " + name + " already exists"
	case errors.Is(e.Err, os.ErrPermission):
		return "Rename failed - permission denied in " + filepath.Dir(e.From)
	}
	return "Rename failed: " + causeOf(e.Err)
}

// causeOf returns the innermost error message
func causeOf(err error) string {
	root := err
	for {
		unwrapped := errors.Unwrap(root)
		if unwrapped == nil {
			break
		}
		root = unwrapped
	}
	return root.Error()
}
