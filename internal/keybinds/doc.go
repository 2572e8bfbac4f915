/*
Package keybinds provides customizable, context-scoped keyboard bindings.

# Overview

Every widget of the editor enables an ordered set of actions
(ContextActions). A Keymap assigns keys to actions; a Registry is built
per context from the keymap and that context's action set.

# Key Concepts

Contexts:
  - dir_list: directory listing
  - metadata: metadata field editor
  - log_viewer: log viewer
  - text_input: modal text capture

Resolution:
  - Registry.Resolve returns the first enabled action, in registration
    order, bound to a key.
  - Two enabled actions sharing a key is a conflict. Build reports one
    ValidationError per shared key and still returns a usable registry.
  - The log viewer enables switch_to_previous_widget before
    log_exit_page_mode, so esc leaves the viewer.

# Components

Registry (registry.go):
  - Build, BuildForContext
  - Resolve, Conflicts, ListBindings

Validator (validator.go):
  - Validates a keymap against every context
  - Reports conflicts, malformed keys, unbound actions
  - Protects reserved keys (ctrl+c)

Defaults (defaults.go):
  - DefaultKeymap, used when no keybinds.json exists

# Configuration File Format

~/.music-manager/keybinds.json overrides default keys per action. Comments
are allowed:

	// vim-style arrows as well
	{
	  "version": "1.0",
	  "bindings": {
	    "select_down": "j,down",
	    "select_up": "k,up",
	    "log_toggle_hide_targets": "space"
	  }
	}

Actions not listed keep their default keys. Unknown action names are
rejected.
*/
package keybinds
