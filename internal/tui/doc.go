/*
Package tui implements the terminal tag editor.

# Architecture

The editing logic lives in Editor, a modal state machine with no terminal
dependency. Model adapts it to Bubble Tea:
  - editor.go: focus handling, key routing and track edits
  - list_state.go: SelectableList, the wrapping cursor used by every list
  - input_state.go: text captured while editing a field
  - log_view_state.go: level filters and paging for the log viewer
  - model.go, keys.go, render.go: Bubble Tea Update/View

# Widgets

Exactly one widget has focus:
  - WidgetDirList: tracks in the browsed directory
  - WidgetMetadata: the fields of the loaded track
  - WidgetLog: recent log records, filtered per target
  - WidgetInput: free text for the field selected when editing began

Each widget has its own keybinds.Registry, built once when the editor starts.
A key that resolves to no action is ignored, except in WidgetInput where
its text is appended to the buffer.

# Threading Model

Bubble Tea delivers one message at a time. The directory is listed inside a
tea.Cmd on every tick and the result is applied between key presses.
Tag reads and writes, renames and catalog updates run synchronously.
*/
package tui
