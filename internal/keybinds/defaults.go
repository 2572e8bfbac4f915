package keybinds

import "sort"

// Keymap maps each action to the keys that trigger it
type Keymap map[Action][]string

// DefaultKeymap returns the built-in key table
func DefaultKeymap() Keymap {
	return Keymap{
		ActionQuit:                   {"ctrl+c", "q"},
		ActionSwitchToLogWidget:      {"ctrl+l"},
		ActionSwitchToPreviousWidget: {"esc"},
		ActionSelectDown:             {"j"},
		ActionSelectUp:               {"k"},
		ActionEnter:                  {"enter"},
		ActionSwitchToDirListWidget:  {"d"},

		ActionLogToggleHideSelector:   {"h"},
		ActionLogToggleFocus:          {"f"},
		ActionLogSelectPreviousTarget: {"up"},
		ActionLogSelectNextTarget:     {"down"},
		ActionLogReduceShown:          {"left"},
		ActionLogIncreaseShown:        {"right"},
		ActionLogDecreaseCapture:      {"-"},
		ActionLogIncreaseCapture:      {"+"},
		ActionLogPageUp:               {"pgup"},
		ActionLogPageDown:             {"pgdown"},
		ActionLogExitPageMode:         {"esc"},
		ActionLogToggleHideTargets:    {" "},

		ActionSaveTagsToFile: {"s"},

		ActionTextSubmit:    {"enter"},
		ActionTextCancel:    {"esc"},
		ActionTextBackspace: {"backspace"},
		ActionTextPaste:     {"ctrl+v"},
	}
}

// Keys returns the keys bound to an action
func (k Keymap) Keys(action Action) []string {
	return k[action]
}

// Set replaces the keys bound to an action
func (k Keymap) Set(action Action, keys []string) {
	k[action] = append([]string(nil), keys...)
}

// Clone creates a deep copy of the keymap
func (k Keymap) Clone() Keymap {
	clone := make(Keymap, len(k))
	for action, keys := range k {
		clone.Set(action, keys)
	}
	return clone
}

// Actions returns the bound actions sorted by name
func (k Keymap) Actions() []Action {
	actions := make([]Action, 0, len(k))
	for action := range k {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
