package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/logging"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the directory list, the metadata panel and the log panel
func (m Model) renderMain() string {
	e := m.editor

	logHeight := m.logPanelHeight()
	topHeight := max(m.height-logHeight-StatusBarLines, MinTopPanelHeight)

	leftWidth := max(MinDirPanelWidth, m.width*DirPanelWidthPercent/100)
	if m.width < NarrowLayoutWidth {
		leftWidth = m.width / 2
	}
	rightWidth := m.width - leftWidth

	dirBox := m.box(e.Focus() == WidgetDirList, leftWidth, topHeight).
		Render(m.renderDirList(leftWidth-BorderWidth, topHeight-BorderWidth))

	metaFocused := e.Focus() == WidgetMetadata || e.Focus() == WidgetInput
	metaBox := m.box(metaFocused, rightWidth, topHeight).
		Render(m.renderMetadata(rightWidth-BorderWidth, topHeight-BorderWidth))

	logBox := m.box(e.Focus() == WidgetLog, m.width, logHeight).
		Render(m.renderLogPanel(m.width - BorderWidth))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, dirBox, metaBox),
		logBox,
		m.renderStatusBar(),
	)
}

// box returns a bordered panel style, highlighted when focused
func (m Model) box(focused bool, width, height int) lipgloss.Style {
	border := colorGray
	if focused {
		border = colorGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-BorderWidth, 1)).
		Height(max(height-BorderWidth, 1))
}

func (m Model) logPanelHeight() int {
	if m.editor.Focus() == WidgetLog {
		return max(m.height/2, LogPanelFocusedMinHeight)
	}
	return max(m.height/4, LogPanelMinHeight)
}

// renderDirList renders the browsed directory with the cursor
func (m Model) renderDirList(width, height int) string {
	list := m.editor.DirList()
	lines := []string{styleTitle.Render(truncate(m.editor.Dir(), width)), ""}

	items := list.Items()
	if len(items) == 0 {
		lines = append(lines, styleSubtle.Render("No tracks found"))
		return strings.Join(lines, "\n")
	}

	selected, hasSelection := list.Selected()
	pageSize := max(height-DirListChrome, 1)
	offset := 0
	if hasSelection && selected >= pageSize {
		offset = selected - pageSize + 1
	}

	end := min(offset+pageSize, len(items))
	for i := offset; i < end; i++ {
		line := truncate(items[i], width)
		if hasSelection && i == selected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	if hasSelection {
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("[%d/%d]", selected+1, len(items))))
	}
	return strings.Join(lines, "\n")
}

// renderMetadata renders the loaded track's display lines and the input line
func (m Model) renderMetadata(width, height int) string {
	e := m.editor
	lines := []string{styleTitle.Render("Metadata"), ""}

	if e.Track() == nil {
		lines = append(lines, styleSubtle.Render("Press enter on a track to edit it"))
		return strings.Join(lines, "\n")
	}

	selected, hasSelection := e.Fields().Selected()
	for i, line := range e.Fields().Items() {
		line = truncate(line, width)
		if hasSelection && i == selected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	if e.Focus() == WidgetInput {
		lines = append(lines, "")
		prompt := fmt.Sprintf("New %s: ", e.Input().Field())
		lines = append(lines, styleWarning.Render(prompt)+addCursor(e.Input().Value()))
	}

	for len(lines) > height && len(lines) > 0 {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// renderLogPanel renders the target selector and the filtered log lines
func (m Model) renderLogPanel(width int) string {
	logs := m.editor.Logs()

	title := "Logs"
	if logs.PageMode() {
		title += styleWarning.Render(fmt.Sprintf(" (paged, -%d)", logs.Offset()))
	}
	if logs.Focused() {
		if target, ok := logs.SelectedTarget(); ok {
			title += styleSubtle.Render(" focus: " + target)
		}
	}
	header := styleTitle.Render(title)

	body := m.logView.View()
	if logs.SelectorHidden() || m.editor.Focus() != WidgetLog {
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	selectorWidth := min(TargetSelectorMaxWidth, width/3)
	selector := lipgloss.NewStyle().Width(selectorWidth).Render(m.renderTargetSelector(selectorWidth))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, selector, body),
	)
}

func (m Model) renderTargetSelector(width int) string {
	logs := m.editor.Logs()
	selected, _ := logs.SelectedTarget()

	var lines []string
	for _, target := range logs.Targets() {
		line := truncate(fmt.Sprintf("%-6s %-6s %s", logs.Shown(target), logs.Capture(target), target), width)
		if target == selected {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return styleSubtle.Render("no targets")
	}
	return strings.Join(lines, "\n")
}

// updateLogView resizes the log viewport and refills it
func (m *Model) updateLogView() {
	if m.width == 0 {
		return
	}

	height := max(m.logPanelHeight()-LogPanelChrome, 1)
	width := m.width - BorderWidth
	if m.editor.Focus() == WidgetLog && !m.editor.Logs().SelectorHidden() {
		width -= min(TargetSelectorMaxWidth, width/3)
	}

	m.logView.Width = max(width, 1)
	m.logView.Height = height
	m.editor.Logs().SetPageSize(height)

	records := m.editor.Logs().Window(height)
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = formatRecord(rec, m.logView.Width)
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	m.logView.GotoBottom()
}

func formatRecord(rec logging.Record, width int) string {
	level := strings.ToUpper(rec.Level.String())
	if len(level) > LogLevelWidth {
		level = level[:LogLevelWidth]
	}
	line := fmt.Sprintf("%s %-5s [%s] %s", rec.Time.Format("15:04:05"), level, rec.Target, rec.Message)
	line = truncate(line, width)

	switch {
	case rec.Level <= logrus.ErrorLevel:
		return styleError.Render(line)
	case rec.Level == logrus.WarnLevel:
		return styleWarning.Render(line)
	case rec.Level == logrus.InfoLevel:
		return styleInfo.Render(line)
	default:
		return styleSubtle.Render(line)
	}
}

// renderStatusBar shows the focused widget, messages and key hints
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("[%s]", m.editor.Focus())

	right := ""
	if m.errorMsg != "" {
		right = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		right = styleSuccess.Render(m.statusMsg)
	} else {
		right = styleSubtle.Render(m.keyHints())
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

// keyHints lists the bindings of a few actions in the focused context
func (m Model) keyHints() string {
	registry := m.editor.Registry()

	var hints []keybinds.Action
	switch m.editor.Focus() {
	case WidgetDirList:
		hints = []keybinds.Action{keybinds.ActionEnter, keybinds.ActionSwitchToLogWidget, keybinds.ActionQuit}
	case WidgetMetadata:
		hints = []keybinds.Action{keybinds.ActionEnter, keybinds.ActionSaveTagsToFile, keybinds.ActionSwitchToDirListWidget, keybinds.ActionQuit}
	case WidgetLog:
		hints = []keybinds.Action{keybinds.ActionSwitchToPreviousWidget, keybinds.ActionLogPageUp, keybinds.ActionLogToggleFocus}
	case WidgetInput:
		hints = []keybinds.Action{keybinds.ActionTextSubmit, keybinds.ActionTextCancel, keybinds.ActionTextPaste}
	}

	parts := make([]string, 0, len(hints))
	for _, a := range hints {
		parts = append(parts, fmt.Sprintf("%s: %s", registry.GetBindingString(a), a))
	}
	return strings.Join(parts, " | ")
}

func addCursor(s string) string {
	return s + "█"
}

func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
