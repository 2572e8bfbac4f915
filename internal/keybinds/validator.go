package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keymaps against every context's action set
type Validator struct {
	// reservedKeys are keys that should stay bound to their action
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuit, // Force quit should always work
		},
	}
}

// ValidateKeymap validates a keymap in every context
func (v *Validator) ValidateKeymap(keymap Keymap) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkKeys(keymap, result)
	v.checkReservedKeys(keymap, result)

	for _, context := range AllContexts {
		_, conflicts := BuildForContext(context, keymap)
		result.Warnings = append(result.Warnings, conflicts...)
		v.checkUnbound(context, keymap, result)
	}

	return result
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	keymap := DefaultKeymap()
	if err := ApplyConfig(keymap, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{
				Type:    "invalid",
				Message: err.Error(),
			}},
		}
	}

	return v.ValidateKeymap(keymap)
}

// checkKeys reports malformed keys
func (v *Validator) checkKeys(keymap Keymap, result *ValidationResult) {
	for _, action := range keymap.Actions() {
		for _, key := range keymap[action] {
			if err := ValidateKey(key); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Key:     key,
					Message: fmt.Sprintf("%s: %v", action, err),
				})
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(keymap Keymap, result *ValidationResult) {
	for _, action := range keymap.Actions() {
		for _, key := range keymap[action] {
			reserved, ok := v.reservedKeys[key]
			if ok && action != reserved {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Key:     key,
					Message: fmt.Sprintf("reserved key rebound to %s (may cause issues)", action),
				})
			}
		}
	}
}

// checkUnbound warns about enabled actions without keys
func (v *Validator) checkUnbound(context Context, keymap Keymap, result *ValidationResult) {
	for _, action := range ContextActions[context] {
		if len(keymap.Keys(action)) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: context,
				Message: fmt.Sprintf("action %s has no key", action),
			})
		}
	}
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	// Check for valid modifier combinations
	validModifiers := []string{"ctrl+", "alt+", "shift+", "super+"}
	for _, mod := range validModifiers {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}
