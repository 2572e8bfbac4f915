package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/music-manager/internal/download"
)

// ErrCancelled is returned when the user backs out of a prompt
var ErrCancelled = errors.New("selection cancelled")

// Prompter reads line answers from a reader, echoing questions to a writer
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a line prompter
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer, or def when it is empty
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	value, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	return value, nil
}

// Confirm asks a yes/no question defaulting to no
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	detailStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type resultItem struct {
	result download.SearchResult
	index  int
}

func (i resultItem) FilterValue() string {
	return i.result.Title + " " + i.result.Artist()
}

func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choice   int
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = -1
			return m, tea.Quit

		case "enter":
			m.choice = -1
			if i, ok := m.list.SelectedItem().(resultItem); ok {
				m.choice = i.index
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: download • q/esc: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// resultDelegate renders one search result per line
type resultDelegate struct{}

func (d resultDelegate) Height() int                             { return 1 }
func (d resultDelegate) Spacing() int                            { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d resultDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(resultItem)
	if !ok {
		return
	}

	str := formatResult(i.index, i.result)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// formatResult renders a search result as "N. Title - Channel (m:ss)"
func formatResult(index int, r download.SearchResult) string {
	line := fmt.Sprintf("%d. %s", index+1, r.Title)
	if artist := r.Artist(); artist != "" {
		line += " - " + artist
	}
	if r.Duration > 0 {
		line += " " + detailStyle.Render("("+r.FormatDuration()+")")
	}
	return line
}

// selectResult shows the search results in an interactive list and returns the chosen index
func selectResult(query string, results []download.SearchResult) (int, error) {
	items := make([]list.Item, 0, len(results))
	for i, r := range results {
		items = append(items, resultItem{result: r, index: i})
	}

	const defaultWidth = 80
	listHeight := min(len(results)+6, 20)

	l := list.New(items, resultDelegate{}, defaultWidth, listHeight)
	l.Title = fmt.Sprintf("Results for: %s", query)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	p := tea.NewProgram(selectorModel{list: l, choice: -1})
	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice < 0 {
		return -1, ErrCancelled
	}
	return result.choice, nil
}

// chooseResult picks a result interactively, or asks for its number when stdin is piped
func (e *Env) chooseResult(query string, results []download.SearchResult) (int, error) {
	if isInteractive() {
		return selectResult(query, results)
	}

	for i, r := range results {
		fmt.Fprintln(e.Err, formatResult(i, r))
	}
	answer, err := e.Prompt.Ask("Select a result", "1")
	if err != nil {
		return -1, err
	}
	indexes, err := parseSelection(answer, len(results))
	if err != nil {
		return -1, err
	}
	return indexes[0], nil
}
