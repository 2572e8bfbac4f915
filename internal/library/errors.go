package library

import "fmt"

// TagReadError is returned when a file has no readable tag block
type TagReadError struct {
	Path string
	Err  error
}

func (e *TagReadError) Error() string {
	return fmt.Sprintf("failed to read tags from %s: %v", e.Path, e.Err)
}

func (e *TagReadError) Unwrap() error { return e.Err }

// TagWriteError is returned when the tag block cannot be written
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("failed to write tags to %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error { return e.Err }

// RenameError is returned when a track file cannot be renamed
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// ListError is returned when a directory cannot be listed
type ListError struct {
	Dir string
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Dir, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }
