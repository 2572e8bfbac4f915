package keybinds

import (
	"fmt"
	"slices"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry holds the actions enabled for one context and resolves keys to them
type Registry struct {
	context Context

	// actions in registration order
	actions []Action

	// keys bound to each enabled action
	keys map[Action][]string
}

// NewRegistry creates an empty registry for a context
func NewRegistry(context Context) *Registry {
	return &Registry{
		context: context,
		keys:    make(map[Action][]string),
	}
}

// Build creates a registry enabling actions with the keys from keymap.
// A conflict is reported for every key bound to more than one enabled action;
// the registry is returned regardless.
func Build(context Context, keymap Keymap, actions []Action) (*Registry, []ValidationError) {
	r := NewRegistry(context)
	for _, action := range actions {
		r.Register(action, keymap.Keys(action)...)
	}
	return r, r.Conflicts()
}

// BuildForContext builds the registry for a context's default action set
func BuildForContext(context Context, keymap Keymap) (*Registry, []ValidationError) {
	return Build(context, keymap, ContextActions[context])
}

// Register enables an action with the given keys
// Registering an already enabled action adds keys without changing its position
func (r *Registry) Register(action Action, keys ...string) {
	if _, ok := r.keys[action]; !ok {
		r.actions = append(r.actions, action)
		r.keys[action] = []string{}
	}
	for _, key := range keys {
		if !slices.Contains(r.keys[action], key) {
			r.keys[action] = append(r.keys[action], key)
		}
	}
}

// Resolve returns the first enabled action in registration order bound to key
func (r *Registry) Resolve(key string) (Action, bool) {
	for _, action := range r.actions {
		if slices.Contains(r.keys[action], key) {
			return action, true
		}
	}
	return "", false
}

// Conflicts returns one conflict per key shared by several enabled actions
func (r *Registry) Conflicts() []ValidationError {
	owners := make(map[string][]Action)
	var order []string

	for _, action := range r.actions {
		for _, key := range r.keys[action] {
			if _, seen := owners[key]; !seen {
				order = append(order, key)
			}
			owners[key] = append(owners[key], action)
		}
	}

	var conflicts []ValidationError
	for _, key := range order {
		actions := owners[key]
		if len(actions) < 2 {
			continue
		}
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		conflicts = append(conflicts, ValidationError{
			Type:    "conflict",
			Context: r.context,
			Key:     key,
			Message: fmt.Sprintf("key shared by actions {%s}", strings.Join(names, ", ")),
		})
	}
	return conflicts
}

// Context returns the context this registry serves
func (r *Registry) Context() Context {
	return r.context
}

// Actions returns the enabled actions in registration order
func (r *Registry) Actions() []Action {
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// GetBinding returns the key(s) bound to an action
func (r *Registry) GetBinding(action Action) []string {
	keys := r.keys[action]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(action Action) string {
	keys := r.GetBinding(action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns all bindings in registration order
func (r *Registry) ListBindings() []Binding {
	var bindings []Binding
	for _, action := range r.actions {
		for _, key := range r.keys[action] {
			bindings = append(bindings, Binding{
				Key:     key,
				Action:  action,
				Context: r.context,
			})
		}
	}
	return bindings
}
