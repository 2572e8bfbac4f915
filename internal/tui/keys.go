package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/music-manager/internal/keybinds"
)

// handleKeyPress converts a key press and routes it to the editor
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c is reserved and always quits
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	before := m.editor.Focus()
	result, err := m.editor.Dispatch(keyEvent(msg))
	if result == Exit {
		return m.quit()
	}
	if err != nil {
		return m.setError(err)
	}

	action, ok := m.registryFor(before).Resolve(msg.String())
	if ok && action == keybinds.ActionSaveTagsToFile && before == WidgetMetadata {
		return m.setStatusMessage("Tags saved to " + m.editor.Track().DisplayName)
	}
	if before == WidgetInput && m.editor.Focus() != WidgetInput {
		m.statusMsg = ""
		m.errorMsg = ""
	}
	if m.editor.Focus() == WidgetLog {
		m.updateLogView()
	}
	return nil
}

func (m *Model) registryFor(w Widget) *keybinds.Registry {
	return m.editor.registries[w.Context()]
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Cleanup()
	return tea.Quit
}

// keyEvent converts a Bubble Tea key message into an editor key event
func keyEvent(msg tea.KeyMsg) KeyEvent {
	ev := KeyEvent{Key: msg.String()}
	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			ev.Text = string(msg.Runes)
		}
	case tea.KeySpace:
		ev.Text = " "
	}
	return ev
}
