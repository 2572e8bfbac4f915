package tui

import (
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/logging"
)

// LevelFilter is the number of log levels let through, counted from panic.
// LevelOff lets nothing through and LevelAll lets everything through.
type LevelFilter int

const (
	LevelOff LevelFilter = 0
	LevelAll             = LevelFilter(logrus.TraceLevel) + 1

	defaultShown    = LevelFilter(logrus.InfoLevel) + 1
	defaultPageSize = 10
)

// Allows reports whether records at level pass the filter
func (f LevelFilter) Allows(level logrus.Level) bool {
	return int(level) < int(f)
}

// String names the most verbose level let through
func (f LevelFilter) String() string {
	if f <= LevelOff {
		return "off"
	}
	return logrus.Level(f - 1).String()
}

// LogViewState is the state of the log viewer widget
type LogViewState struct {
	ring *logging.Ring

	selector *SelectableList
	shown    map[string]LevelFilter
	capture  map[string]LevelFilter

	hideSelector bool
	focus        bool
	hideDisabled bool

	pageMode bool
	offset   int
	pageSize int
}

// NewLogViewState creates a log viewer over ring. A nil ring shows nothing.
func NewLogViewState(ring *logging.Ring) *LogViewState {
	s := &LogViewState{
		ring:     ring,
		selector: NewSelectableList(nil),
		shown:    make(map[string]LevelFilter),
		capture:  make(map[string]LevelFilter),
		pageSize: defaultPageSize,
	}
	s.Refresh()
	return s
}

// Refresh picks up targets that logged since the last refresh, keeping the selected target
func (s *LogViewState) Refresh() {
	if s.ring == nil {
		return
	}

	targets := s.ring.Targets()
	for _, t := range targets {
		if _, ok := s.shown[t]; !ok {
			s.shown[t] = defaultShown
			s.capture[t] = LevelAll
		}
	}

	selected, hadSelection := s.selector.SelectedLabel()
	if !s.selector.ReplaceItems(targets) || !hadSelection {
		return
	}
	for i, t := range targets {
		if t == selected {
			s.selector.Select(i)
			return
		}
	}
}

// Handle applies a log viewer action, reporting whether it was one
func (s *LogViewState) Handle(action keybinds.Action) bool {
	switch action {
	case keybinds.ActionLogToggleHideSelector:
		s.hideSelector = !s.hideSelector
	case keybinds.ActionLogToggleFocus:
		s.focus = !s.focus
	case keybinds.ActionLogSelectPreviousTarget:
		s.selector.Retreat()
	case keybinds.ActionLogSelectNextTarget:
		s.selector.Advance()
	case keybinds.ActionLogReduceShown:
		s.adjust(s.shown, -1)
	case keybinds.ActionLogIncreaseShown:
		s.adjust(s.shown, 1)
	case keybinds.ActionLogDecreaseCapture:
		s.adjust(s.capture, -1)
	case keybinds.ActionLogIncreaseCapture:
		s.adjust(s.capture, 1)
	case keybinds.ActionLogPageUp:
		s.pageMode = true
		s.offset += s.pageSize
		if limit := s.countVisible() - s.pageSize; s.offset > limit {
			s.offset = max(limit, 0)
		}
	case keybinds.ActionLogPageDown:
		s.offset -= s.pageSize
		if s.offset <= 0 {
			s.exitPageMode()
		}
	case keybinds.ActionLogExitPageMode:
		s.exitPageMode()
	case keybinds.ActionLogToggleHideTargets:
		s.hideDisabled = !s.hideDisabled
	default:
		return false
	}
	return true
}

func (s *LogViewState) exitPageMode() {
	s.pageMode = false
	s.offset = 0
}

// adjust moves the selected target's filter by delta; shown never exceeds capture
func (s *LogViewState) adjust(filters map[string]LevelFilter, delta int) {
	target, ok := s.selector.SelectedLabel()
	if !ok {
		return
	}

	f := filters[target] + LevelFilter(delta)
	if f < LevelOff {
		f = LevelOff
	}
	if f > LevelAll {
		f = LevelAll
	}
	filters[target] = f

	if s.shown[target] > s.capture[target] {
		s.shown[target] = s.capture[target]
	}
}

// SetPageSize sets the number of lines scrolled by a page
func (s *LogViewState) SetPageSize(n int) {
	if n > 0 {
		s.pageSize = n
	}
}

// Visible returns the records passing the target filters, oldest first
func (s *LogViewState) Visible() []logging.Record {
	if s.ring == nil {
		return nil
	}

	selected, hasSelection := s.selector.SelectedLabel()

	var out []logging.Record
	for _, rec := range s.ring.Snapshot() {
		if s.focus && hasSelection && rec.Target != selected {
			continue
		}
		if !s.Shown(rec.Target).Allows(rec.Level) || !s.Capture(rec.Target).Allows(rec.Level) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Window returns at most height visible records ending at the page offset
func (s *LogViewState) Window(height int) []logging.Record {
	records := s.Visible()
	end := len(records)
	if s.pageMode {
		end -= s.offset
	}
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	return records[start:end]
}

func (s *LogViewState) countVisible() int {
	return len(s.Visible())
}

// Targets returns the targets listed in the selector
func (s *LogViewState) Targets() []string {
	if !s.hideDisabled {
		return s.selector.Items()
	}
	var out []string
	for _, t := range s.selector.Items() {
		if s.Shown(t) > LevelOff {
			out = append(out, t)
		}
	}
	return out
}

// SelectedTarget returns the highlighted target
func (s *LogViewState) SelectedTarget() (string, bool) {
	return s.selector.SelectedLabel()
}

// Shown returns the display filter of target
func (s *LogViewState) Shown(target string) LevelFilter {
	if f, ok := s.shown[target]; ok {
		return f
	}
	return defaultShown
}

// Capture returns the capture filter of target
func (s *LogViewState) Capture(target string) LevelFilter {
	if f, ok := s.capture[target]; ok {
		return f
	}
	return LevelAll
}

func (s *LogViewState) SelectorHidden() bool { return s.hideSelector }
func (s *LogViewState) Focused() bool        { return s.focus }
func (s *LogViewState) PageMode() bool       { return s.pageMode }
func (s *LogViewState) Offset() int          { return s.offset }
