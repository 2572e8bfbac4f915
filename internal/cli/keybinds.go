package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/studiowebux/music-manager/internal/keybinds"
)

// KeybindsInit writes an example keybinds.json listing every default binding
func KeybindsInit(env *Env, force bool) error {
	if _, err := os.Stat(env.KeybindsPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", env.KeybindsPath)
	}

	if err := keybinds.CreateExampleConfig(env.KeybindsPath); err != nil {
		return fmt.Errorf("failed to write keybinds: %w", err)
	}

	env.success("Wrote %s", env.KeybindsPath)
	return nil
}

// KeybindsCheck validates the user keybinds file and reports conflicts
func KeybindsCheck(env *Env) error {
	result, err := checkKeybinds(env.KeybindsPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Out, result.String())
	if result.HasErrors() {
		return fmt.Errorf("%s has %d error(s)", env.KeybindsPath, len(result.Errors))
	}
	return nil
}

// checkKeybinds validates path, or the defaults when it does not exist
func checkKeybinds(path string) (*keybinds.ValidationResult, error) {
	validator := keybinds.NewValidator()

	config, err := keybinds.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return validator.ValidateKeymap(keybinds.DefaultKeymap()), nil
	}
	if err != nil {
		return nil, err
	}

	return validator.ValidateConfig(config), nil
}

// KeybindsList prints the effective bindings of every context
func KeybindsList(env *Env) error {
	keymap, err := keybinds.LoadOrDefault(env.KeybindsPath)
	if err != nil {
		return err
	}
	return writeBindings(env.Out, keymap)
}

func writeBindings(out io.Writer, keymap keybinds.Keymap) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, context := range keybinds.AllContexts {
		registry, _ := keybinds.BuildForContext(context, keymap)

		fmt.Fprintf(w, "[%s]\n", context)
		for _, action := range registry.Actions() {
			fmt.Fprintf(w, "  %s\t%s\n", action, registry.GetBindingString(action))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
