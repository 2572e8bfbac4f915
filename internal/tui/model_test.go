package tui

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/music-manager/internal/config"
	"github.com/studiowebux/music-manager/internal/library"
)

// CreateTestModel creates a Model over an in-memory directory holding names
func CreateTestModel(t *testing.T, names ...string) (*Model, *testEditor) {
	t.Helper()

	te := CreateTestEditor(t, names...)
	m := New(te.Editor, te.fs, config.DefaultSettings())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m, te
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_InitializesModel(t *testing.T) {
	m, _ := CreateTestModel(t, fiveTracks...)

	AssertModelField(t, "tickRate", m.tickRate, 200*time.Millisecond)
	AssertModelField(t, "width", m.width, 120)
	if m.Init() == nil {
		t.Error("Init() should start the directory poll")
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want KeyEvent
	}{
		{"rune", runeKey("a"), KeyEvent{Key: "a", Text: "a"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, KeyEvent{Key: " ", Text: " "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, KeyEvent{Key: "enter"}},
		{"ctrl+v", tea.KeyMsg{Type: tea.KeyCtrlV}, KeyEvent{Key: "ctrl+v"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, KeyEvent{Key: "alt+x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			AssertModelField(t, "keyEvent", keyEvent(tt.msg), tt.want)
		})
	}
}

func TestModel_EditFlow(t *testing.T) {
	m, te := CreateTestModel(t, fiveTracks...)

	m.Update(runeKey("j"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	AssertModelField(t, "focus", te.Focus(), WidgetMetadata)

	for i := 0; i < 4; i++ {
		m.Update(runeKey("j"))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	AssertModelField(t, "focus", te.Focus(), WidgetInput)

	m.Update(runeKey("Live"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	AssertModelField(t, "album", *te.Track().Album, "Live")

	m.Update(runeKey("s"))
	if !strings.Contains(m.statusMsg, "Tags saved") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	view := m.View()
	if !strings.Contains(view, "Album: Live") {
		t.Error("view should show the edited album")
	}
}

func TestModel_ErrorsGoToStatusBar(t *testing.T) {
	m, te := CreateTestModel(t, fiveTracks...)
	te.store.readErr[te.Editor.entries[0].Path] = errors.New("broken")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("errors should not quit")
	}
	if !strings.Contains(m.errorMsg, "broken") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
	AssertModelField(t, "focus", te.Focus(), WidgetDirList)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runeKey("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := CreateTestModel(t, fiveTracks...)
			closed := false
			m.closer = func() error { closed = true; return nil }

			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			AssertModelField(t, "closed", closed, true)
			AssertModelField(t, "view", m.View(), "")
		})
	}
}

func TestModel_ListingMessage(t *testing.T) {
	m, te := CreateTestModel(t, fiveTracks...)

	m.Update(listingMsg{entries: []library.Entry{{Name: "z.flac", Path: "/music/z.flac"}}})
	AssertModelField(t, "dir list length", te.DirList().Len(), 1)

	m.Update(listingMsg{err: errors.New("unreadable")})
	if !strings.Contains(m.errorMsg, "unreadable") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
	AssertModelField(t, "dir list length", te.DirList().Len(), 1)
}

func TestModel_ListDirectoryCmd(t *testing.T) {
	m, _ := CreateTestModel(t, fiveTracks...)

	msg, ok := m.listDirectory()().(listingMsg)
	if !ok {
		t.Fatal("expected listingMsg")
	}
	AssertNoError(t, msg.err)
	AssertModelField(t, "entries", len(msg.entries), 5)
}

func TestModel_TruncatesLongErrors(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.setError(errors.New(strings.Repeat("x", 150)))
	AssertModelField(t, "errorMsg length", len(m.errorMsg), 100)
	AssertModelField(t, "fullErrorMsg length", len(m.fullErrorMsg), 150)
}

func TestClipMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"short", "saved", "saved"},
		{"exact", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"ascii", strings.Repeat("a", 101), strings.Repeat("a", 97) + "..."},
		{"accented", strings.Repeat("a", 96) + "éééé" + "z", strings.Repeat("a", 96) + "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipMessage(tt.msg)
			AssertModelField(t, "clipMessage", got, tt.want)
			if !utf8.ValidString(got) {
				t.Errorf("clipMessage(%q) is not valid UTF-8", tt.msg)
			}
		})
	}
}
