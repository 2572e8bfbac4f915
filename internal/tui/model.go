package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
)

// Model adapts the Editor to Bubble Tea
type Model struct {
	editor   *Editor
	fs       library.FileSystem
	tickRate time.Duration
	closer   func() error

	logView viewport.Model

	// UI state
	width        int
	height       int
	statusMsg    string
	errorMsg     string // Truncated error for footer
	fullErrorMsg string
	quitting     bool
}

// Custom message types
type tickMsg time.Time

type listingMsg struct {
	entries []library.Entry
	err     error
}

// Init starts the directory poll
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listDirectory(), m.tick())
}

// Cleanup closes the catalog
func (m *Model) Cleanup() {
	if m.closer != nil {
		if err := m.closer(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing catalog database: %v\n", err)
		}
		m.closer = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLogView()

	case tickMsg:
		m.editor.Logs().Refresh()
		m.updateLogView()
		cmd = tea.Batch(m.listDirectory(), m.tick())

	case listingMsg:
		if msg.err != nil {
			cmd = m.setError(msg.err)
			break
		}
		m.editor.ApplyListing(msg.entries)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}
	return m.renderMain()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listDirectory reads the browsed directory off the event loop
func (m *Model) listDirectory() tea.Cmd {
	fs := m.fs
	dir := m.editor.Dir()
	return func() tea.Msg {
		entries, err := fs.ListDirectory(dir)
		if err != nil {
			return listingMsg{err: &library.ListError{Dir: dir, Err: err}}
		}
		return listingMsg{entries: entries}
	}
}

// Helper methods for setting messages
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.statusMsg = clipMessage(msg)
	return nil
}

// setError shows the categorized form of err and logs the full message
func (m *Model) setError(err error) tea.Cmd {
	m.fullErrorMsg = err.Error()
	m.errorMsg = clipMessage(categorizeError(err))
	logging.For(logging.TargetEditor).Error(m.fullErrorMsg)
	return nil
}

// clipMessage truncates msg to the footer width without splitting a character
func clipMessage(msg string) string {
	return ansi.Truncate(msg, StatusMessageMaxLen, "...")
}
