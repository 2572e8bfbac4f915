package tui

import (
	"sync"

	"github.com/studiowebux/music-manager/internal/library"
)

// InputState holds the free text typed while editing a metadata field
type InputState struct {
	mu sync.RWMutex

	buffer []rune
	field  library.Field
	active bool
}

// NewInputState creates an inactive input state
func NewInputState() *InputState {
	return &InputState{}
}

// Begin starts capturing text for field with an empty buffer
func (s *InputState) Begin(field library.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = s.buffer[:0]
	s.field = field
	s.active = true
}

// Append adds text at the end of the buffer
func (s *InputState) Append(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.buffer = append(s.buffer, []rune(text)...)
}

// Backspace removes the last character
func (s *InputState) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buffer) > 0 {
		s.buffer = s.buffer[:len(s.buffer)-1]
	}
}

// Take ends the capture and returns the buffered text with its field
func (s *InputState) Take() (string, library.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value := string(s.buffer)
	s.buffer = s.buffer[:0]
	s.active = false
	return value, s.field
}

// Reset ends the capture, discarding the buffer
func (s *InputState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = s.buffer[:0]
	s.active = false
}

// Value returns the buffered text
func (s *InputState) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.buffer)
}

// Field returns the field being edited
func (s *InputState) Field() library.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.field
}

// Active reports whether text is being captured
func (s *InputState) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}
