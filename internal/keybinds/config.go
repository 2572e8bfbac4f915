package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Bindings maps an action name to a comma separated key list, e.g. "select_down": "j,down".
type Config struct {
	Version  string            `json:"version"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file (comments allowed)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a keymap
// User bindings replace the default keys of the named action
func ApplyConfig(keymap Keymap, config *Config) error {
	for name, value := range config.Bindings {
		if !IsKnownAction(name) {
			return fmt.Errorf("unknown action '%s'", name)
		}

		keys := ParseKeyList(value)
		for _, key := range keys {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("action '%s': %w", name, err)
			}
		}
		keymap.Set(Action(name), keys)
	}

	return nil
}

// ParseKeyList splits a comma separated key list.
// A lone "," is kept as the comma key and "space" maps to " ".
func ParseKeyList(value string) []string {
	if value == "," {
		return []string{","}
	}

	var keys []string
	for _, part := range strings.Split(value, ",") {
		if part == " " {
			keys = append(keys, part)
			continue
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "space" {
			part = " "
		}
		keys = append(keys, part)
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns the default keymap
func LoadOrDefault(configPath string) (Keymap, error) {
	keymap := DefaultKeymap()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(keymap, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return keymap, nil
}

// ExportConfig converts a keymap into a config
func ExportConfig(keymap Keymap) *Config {
	config := &Config{
		Version:  "1.0",
		Bindings: make(map[string]string),
	}
	for _, action := range keymap.Actions() {
		keys := make([]string, 0, len(keymap[action]))
		for _, key := range keymap[action] {
			if key == " " {
				key = "space"
			}
			keys = append(keys, key)
		}
		config.Bindings[string(action)] = strings.Join(keys, ",")
	}
	return config
}

// GetDefaultConfigPath returns the default path for keybinds.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".music-manager", "keybinds.json"), nil
}

// CreateExampleConfig writes a commented keybinds.json listing every default binding
func CreateExampleConfig(path string) error {
	config := ExportConfig(DefaultKeymap())

	var sb strings.Builder
	sb.WriteString("// music-manager keybindings\n")
	sb.WriteString("// Values are comma separated keys. Use \"space\" for the space bar.\n")
	sb.WriteString("// ctrl+c always quits.\n")

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	sb.Write(data)
	sb.WriteString("\n")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}
