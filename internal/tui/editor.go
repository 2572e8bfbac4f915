package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
)

// Widget is the focused part of the editor
type Widget int

const (
	WidgetDirList Widget = iota
	WidgetMetadata
	WidgetLog
	WidgetInput
)

func (w Widget) String() string {
	switch w {
	case WidgetDirList:
		return "dir list"
	case WidgetMetadata:
		return "metadata"
	case WidgetLog:
		return "log"
	case WidgetInput:
		return "input"
	default:
		return fmt.Sprintf("widget(%d)", int(w))
	}
}

// Context returns the keybind context active while w is focused
func (w Widget) Context() keybinds.Context {
	switch w {
	case WidgetMetadata:
		return keybinds.ContextMetadata
	case WidgetLog:
		return keybinds.ContextLogViewer
	case WidgetInput:
		return keybinds.ContextTextInput
	default:
		return keybinds.ContextDirList
	}
}

// StepResult tells the caller whether to keep running
type StepResult int

const (
	Continue StepResult = iota
	Exit
)

// KeyEvent is one key press. Key is the binding name ("enter", "ctrl+v", "a");
// Text is the printable text the key produced, empty for control keys.
type KeyEvent struct {
	Key  string
	Text string
}

// ErrEmptyListing is returned when opening a track from an empty directory
var ErrEmptyListing = errors.New("no tracks in directory")

// Catalog is the part of the song database the editor keeps in sync
type Catalog interface {
	SyncTags(t *library.Track) (bool, error)
	RenamePath(oldPath, newPath string) (bool, error)
}

// EditorOptions configures an Editor
type EditorOptions struct {
	Dir       string
	Keymap    keybinds.Keymap
	Catalog   Catalog
	Clipboard func() (string, error)
	Logs      *logging.Ring
}

// Editor is the modal controller behind the terminal UI
type Editor struct {
	mgr       *library.Manager
	dir       string
	catalog   Catalog
	clipboard func() (string, error)

	registries map[keybinds.Context]*keybinds.Registry

	focus    Widget
	previous Widget

	entries []library.Entry
	dirList *SelectableList
	fields  *SelectableList
	track   *library.Track
	input   *InputState
	logs    *LogViewState

	log *logrus.Entry
}

// NewEditor builds one registry per widget and loads the directory listing
func NewEditor(mgr *library.Manager, opts EditorOptions) (*Editor, error) {
	keymap := opts.Keymap
	if keymap == nil {
		keymap = keybinds.DefaultKeymap()
	}
	paste := opts.Clipboard
	if paste == nil {
		paste = clipboard.ReadAll
	}

	e := &Editor{
		mgr:        mgr,
		dir:        opts.Dir,
		catalog:    opts.Catalog,
		clipboard:  paste,
		registries: make(map[keybinds.Context]*keybinds.Registry),
		focus:      WidgetDirList,
		previous:   WidgetDirList,
		dirList:    NewSelectableList(nil),
		fields:     NewSelectableList(nil),
		input:      NewInputState(),
		logs:       NewLogViewState(opts.Logs),
		log:        logging.For(logging.TargetEditor),
	}

	keyLog := logging.For(logging.TargetKeybinds)
	for _, ctx := range keybinds.AllContexts {
		registry, conflicts := keybinds.BuildForContext(ctx, keymap)
		for _, c := range conflicts {
			keyLog.WithField("context", ctx).Warnf("Key '%s' conflict: %s", c.Key, c.Message)
		}
		e.registries[ctx] = registry
	}

	if err := e.reloadListing(); err != nil {
		return nil, err
	}
	return e, nil
}

// Dispatch processes one key event.
// Errors are reported to the caller; the editor stays usable after any of them.
func (e *Editor) Dispatch(ev KeyEvent) (StepResult, error) {
	action, ok := e.registries[e.focus.Context()].Resolve(ev.Key)

	if e.focus == WidgetInput {
		if !ok {
			e.input.Append(ev.Text)
			return Continue, nil
		}
		return Continue, e.handleInput(action)
	}

	if !ok {
		return Continue, nil
	}
	return e.handle(action)
}

func (e *Editor) handle(action keybinds.Action) (StepResult, error) {
	switch action {
	case keybinds.ActionQuit:
		e.log.Info("Quit requested")
		return Exit, nil

	case keybinds.ActionSwitchToLogWidget:
		if e.focus != WidgetLog {
			e.logs.Refresh()
			e.switchTo(WidgetLog)
		}

	case keybinds.ActionSwitchToPreviousWidget:
		e.switchToPrevious()

	case keybinds.ActionSwitchToDirListWidget:
		e.switchTo(WidgetDirList)
		return Continue, e.reloadListing()

	case keybinds.ActionSelectUp:
		if list := e.focusedList(); list != nil {
			list.Retreat()
		}

	case keybinds.ActionSelectDown:
		if list := e.focusedList(); list != nil {
			list.Advance()
		}

	case keybinds.ActionEnter:
		switch e.focus {
		case WidgetDirList:
			return Continue, e.openSelected()
		case WidgetMetadata:
			e.beginInput()
		}

	case keybinds.ActionSaveTagsToFile:
		if e.focus == WidgetMetadata {
			return Continue, e.saveTags()
		}

	default:
		if e.focus == WidgetLog {
			e.logs.Handle(action)
		}
	}

	return Continue, nil
}

func (e *Editor) handleInput(action keybinds.Action) error {
	switch action {
	case keybinds.ActionTextSubmit:
		return e.commitInput()
	case keybinds.ActionTextCancel:
		e.input.Reset()
		e.focus = e.previous
	case keybinds.ActionTextBackspace:
		e.input.Backspace()
	case keybinds.ActionTextPaste:
		text, err := e.clipboard()
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
		e.input.Append(text)
	}
	return nil
}

// OnTick refreshes the directory listing
func (e *Editor) OnTick() (StepResult, error) {
	return Continue, e.reloadListing()
}

// ApplyListing replaces the browsed entries. The selection resets when the names change.
func (e *Editor) ApplyListing(entries []library.Entry) {
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.Name
	}
	e.entries = append([]library.Entry(nil), entries...)
	e.dirList.ReplaceItems(labels)
}

func (e *Editor) reloadListing() error {
	entries, err := e.mgr.FileSystem().ListDirectory(e.dir)
	if err != nil {
		return &library.ListError{Dir: e.dir, Err: err}
	}
	e.ApplyListing(entries)
	return nil
}

func (e *Editor) switchTo(w Widget) {
	if w == e.focus {
		return
	}
	e.previous = e.focus
	e.focus = w
}

func (e *Editor) switchToPrevious() {
	target := e.previous
	// only the two lists are returned to; the log viewer and input fall back to the dir list
	if target == WidgetInput || target == WidgetLog || (target == WidgetMetadata && e.track == nil) {
		target = WidgetDirList
	}
	e.switchTo(target)
}

func (e *Editor) focusedList() *SelectableList {
	switch e.focus {
	case WidgetDirList:
		return e.dirList
	case WidgetMetadata:
		return e.fields
	default:
		return nil
	}
}

// openSelected loads the selected entry, or the first one when nothing is selected
func (e *Editor) openSelected() error {
	if len(e.entries) == 0 {
		return ErrEmptyListing
	}

	index, ok := e.dirList.Selected()
	if !ok {
		index = 0
		e.dirList.Select(0)
	}
	entry := e.entries[index]

	if e.track == nil || e.track.Path != entry.Path {
		track, err := e.mgr.LoadFromFile(entry.Path)
		if err != nil {
			e.log.Errorf("Failed to load %s: %v", entry.Name, err)
			return err
		}
		e.track = track
		e.fields.ReplaceItems(track.DisplayLines())
	}

	e.switchTo(WidgetMetadata)
	return nil
}

func (e *Editor) beginInput() {
	index, ok := e.fields.Selected()
	if !ok {
		e.log.Warn("No field selected")
		return
	}
	field, ok := library.FieldAt(index)
	if !ok {
		e.log.Warnf("No editable field at line %d", index)
		return
	}

	e.input.Begin(field)
	e.switchTo(WidgetInput)
	e.log.Debugf("Editing %s", field)
}

// commitInput applies the buffer to the field captured when input began.
// The interrupted widget is restored whether or not the edit succeeds.
func (e *Editor) commitInput() error {
	value, field := e.input.Take()
	e.focus = e.previous

	if e.track == nil {
		return nil
	}

	oldPath := e.track.Path
	err := e.mgr.SetField(e.track, field, value)
	e.fields.UpdateLabels(e.track.DisplayLines())

	if e.track.Path != oldPath {
		if syncErr := e.syncRename(oldPath, e.track.Path); syncErr != nil && err == nil {
			err = syncErr
		}
	}
	return err
}

func (e *Editor) syncRename(oldPath, newPath string) error {
	if e.catalog == nil {
		return nil
	}
	found, err := e.catalog.RenamePath(oldPath, newPath)
	if err != nil {
		return fmt.Errorf("failed to update catalog path: %w", err)
	}
	if !found {
		logging.For(logging.TargetCatalog).Debugf("%s is not in the catalog", oldPath)
	}
	return nil
}

func (e *Editor) saveTags() error {
	if e.track == nil {
		return nil
	}
	if err := e.mgr.PersistTags(e.track); err != nil {
		e.log.Errorf("Failed to save tags: %v", err)
		return err
	}

	if e.catalog == nil {
		return nil
	}
	found, err := e.catalog.SyncTags(e.track)
	if err != nil {
		return fmt.Errorf("failed to update catalog: %w", err)
	}
	if found {
		logging.For(logging.TargetCatalog).Infof("Updated catalog entry for %s", e.track.DisplayName)
	}
	return nil
}

// Focus returns the focused widget
func (e *Editor) Focus() Widget { return e.focus }

// Previous returns the widget restored by SwitchToPreviousWidget
func (e *Editor) Previous() Widget { return e.previous }

// DirList returns the browse list
func (e *Editor) DirList() *SelectableList { return e.dirList }

// Fields returns the metadata field list of the loaded track
func (e *Editor) Fields() *SelectableList { return e.fields }

// Track returns the loaded track, nil before the first Enter
func (e *Editor) Track() *library.Track { return e.track }

// Input returns the text input state
func (e *Editor) Input() *InputState { return e.input }

// Logs returns the log viewer state
func (e *Editor) Logs() *LogViewState { return e.logs }

// Dir returns the browsed directory
func (e *Editor) Dir() string { return e.dir }

// Registry returns the registry of the focused widget
func (e *Editor) Registry() *keybinds.Registry {
	return e.registries[e.focus.Context()]
}
