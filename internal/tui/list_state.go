package tui

import "slices"

// noSelection marks a list without a selected item
const noSelection = -1

// SelectableList is a cursor over an ordered list of labels.
// The cursor wraps in both directions and is absent on an empty list.
type SelectableList struct {
	items    []string
	selected int
}

// NewSelectableList creates a list without a selection
func NewSelectableList(items []string) *SelectableList {
	return &SelectableList{
		items:    append([]string(nil), items...),
		selected: noSelection,
	}
}

// Advance selects the next item, wrapping to the first.
// Without a selection the first item is selected.
func (l *SelectableList) Advance() {
	if len(l.items) == 0 {
		return
	}
	if l.selected == noSelection {
		l.selected = 0
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// Retreat selects the previous item, wrapping to the last.
// Without a selection the first item is selected.
func (l *SelectableList) Retreat() {
	if len(l.items) == 0 {
		return
	}
	if l.selected == noSelection {
		l.selected = 0
		return
	}
	if l.selected == 0 {
		l.selected = len(l.items) - 1
		return
	}
	l.selected--
}

// ClearSelection removes the selection
func (l *SelectableList) ClearSelection() {
	l.selected = noSelection
}

// Select sets the selection to index when it is in range
func (l *SelectableList) Select(index int) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.selected = index
	return true
}

// ReplaceItems swaps in a new item list. A list that differs from the current
// one resets the selection; an identical list leaves it untouched.
func (l *SelectableList) ReplaceItems(items []string) bool {
	if slices.Equal(l.items, items) {
		return false
	}
	l.items = append([]string(nil), items...)
	l.selected = noSelection
	return true
}

// UpdateLabels swaps in new labels, keeping the selection when the length is unchanged
func (l *SelectableList) UpdateLabels(items []string) {
	if len(items) != len(l.items) {
		l.ReplaceItems(items)
		return
	}
	l.items = append([]string(nil), items...)
}

// Selected returns the selected index
func (l *SelectableList) Selected() (int, bool) {
	if l.selected == noSelection {
		return 0, false
	}
	return l.selected, true
}

// SelectedLabel returns the label of the selected item
func (l *SelectableList) SelectedLabel() (string, bool) {
	if l.selected == noSelection {
		return "", false
	}
	return l.items[l.selected], true
}

// Items returns a copy of the labels
func (l *SelectableList) Items() []string {
	return append([]string(nil), l.items...)
}

// Len returns the number of items
func (l *SelectableList) Len() int {
	return len(l.items)
}
