package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the widget in which a set of actions is enabled
type Context string

const (
	// Contexts define where keybindings are active
	ContextDirList   Context = "dir_list"   // Directory listing
	ContextMetadata  Context = "metadata"   // Metadata field editor
	ContextLogViewer Context = "log_viewer" // Log viewer
	ContextTextInput Context = "text_input" // Text input capture
)

const (
	// Available everywhere
	ActionQuit                   Action = "quit"                      // Quit application
	ActionSwitchToLogWidget      Action = "switch_to_log_widget"      // Open log viewer
	ActionSwitchToPreviousWidget Action = "switch_to_previous_widget" // Return to previous widget
	ActionSelectDown             Action = "select_down"               // Move selection down
	ActionSelectUp               Action = "select_up"                 // Move selection up
	ActionEnter                  Action = "enter"                     // Open or edit selection

	// Widget switching
	ActionSwitchToDirListWidget Action = "switch_to_dir_list_widget" // Back to directory listing

	// Log viewer
	ActionLogToggleHideSelector   Action = "log_toggle_hide_selector"   // Show/hide target selector
	ActionLogToggleFocus          Action = "log_toggle_focus"           // Only show selected target
	ActionLogSelectPreviousTarget Action = "log_select_previous_target" // Previous target
	ActionLogSelectNextTarget     Action = "log_select_next_target"     // Next target
	ActionLogReduceShown          Action = "log_reduce_shown"           // Raise shown level threshold
	ActionLogIncreaseShown        Action = "log_increase_shown"         // Lower shown level threshold
	ActionLogDecreaseCapture      Action = "log_decrease_capture"       // Raise capture level threshold
	ActionLogIncreaseCapture      Action = "log_increase_capture"       // Lower capture level threshold
	ActionLogPageUp               Action = "log_page_up"                // Scroll one page back
	ActionLogPageDown             Action = "log_page_down"              // Scroll one page forward
	ActionLogExitPageMode         Action = "log_exit_page_mode"         // Follow latest entries
	ActionLogToggleHideTargets    Action = "log_toggle_hide_targets"    // Hide/show disabled targets

	// Metadata editor
	ActionSaveTagsToFile Action = "save_tags_to_file" // Write tags to the track file

	// Text input
	ActionTextSubmit    Action = "text_submit"    // Commit input
	ActionTextCancel    Action = "text_cancel"    // Discard input
	ActionTextBackspace Action = "text_backspace" // Delete last character
	ActionTextPaste     Action = "text_paste"     // Paste from clipboard
)

// AllActions lists every action in declaration order
var AllActions = []Action{
	ActionQuit,
	ActionSwitchToLogWidget,
	ActionSwitchToPreviousWidget,
	ActionSelectDown,
	ActionSelectUp,
	ActionEnter,
	ActionSwitchToDirListWidget,
	ActionLogToggleHideSelector,
	ActionLogToggleFocus,
	ActionLogSelectPreviousTarget,
	ActionLogSelectNextTarget,
	ActionLogReduceShown,
	ActionLogIncreaseShown,
	ActionLogDecreaseCapture,
	ActionLogIncreaseCapture,
	ActionLogPageUp,
	ActionLogPageDown,
	ActionLogExitPageMode,
	ActionLogToggleHideTargets,
	ActionSaveTagsToFile,
	ActionTextSubmit,
	ActionTextCancel,
	ActionTextBackspace,
	ActionTextPaste,
}

// AllContexts lists every context
var AllContexts = []Context{
	ContextDirList,
	ContextMetadata,
	ContextLogViewer,
	ContextTextInput,
}

// ContextActions is the ordered set of actions enabled in each context.
// Order matters: when two enabled actions share a key, the earlier one wins.
var ContextActions = map[Context][]Action{
	ContextDirList: {
		ActionQuit,
		ActionSelectUp,
		ActionSelectDown,
		ActionEnter,
		ActionSwitchToLogWidget,
		ActionSwitchToPreviousWidget,
		ActionSwitchToDirListWidget,
	},
	ContextMetadata: {
		ActionQuit,
		ActionSelectUp,
		ActionSelectDown,
		ActionEnter,
		ActionSwitchToLogWidget,
		ActionSwitchToPreviousWidget,
		ActionSaveTagsToFile,
		ActionSwitchToDirListWidget,
	},
	ContextLogViewer: {
		ActionSwitchToPreviousWidget,
		ActionLogDecreaseCapture,
		ActionLogExitPageMode,
		ActionLogIncreaseCapture,
		ActionLogIncreaseShown,
		ActionLogPageDown,
		ActionLogPageUp,
		ActionLogReduceShown,
		ActionLogSelectNextTarget,
		ActionLogSelectPreviousTarget,
		ActionLogToggleFocus,
		ActionLogToggleHideSelector,
		ActionLogToggleHideTargets,
	},
	ContextTextInput: {
		ActionTextSubmit,
		ActionTextCancel,
		ActionTextBackspace,
		ActionTextPaste,
	},
}

// IsKnownAction reports whether name is a declared action
func IsKnownAction(name string) bool {
	for _, a := range AllActions {
		if string(a) == name {
			return true
		}
	}
	return false
}
