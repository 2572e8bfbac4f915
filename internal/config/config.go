package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DatabaseFileName is the catalog file created inside the music directory
	DatabaseFileName = "database.sqlite"
	// LogFileName is the log file created inside the temp directory
	LogFileName = "music-manager.log"
)

var (
	// ConfigDir is the global configuration directory (~/.music-manager)
	ConfigDir string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// KeybindsFile is the user keybinding override file
	KeybindsFile string

	// MusicDir is where downloaded tracks and the catalog live
	MusicDir string

	// DatabasePath is the SQLite catalog file
	DatabasePath string

	// LogFile receives every log entry
	LogFile string

	// Current holds the settings loaded by Initialize
	Current = DefaultSettings()
)

// Initialize sets up the configuration directories and files
// It creates ~/.music-manager/ and the music directory if they don't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".music-manager")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(SettingsFile, DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	settings, err := LoadSettings(SettingsFile)
	if err != nil {
		return err
	}
	Current = settings

	return Resolve(settings)
}

// Resolve derives the global paths from settings
func Resolve(settings *Settings) error {
	musicDir, err := ExpandPath(settings.MusicDir)
	if err != nil {
		return err
	}
	if musicDir == "" {
		musicDir = DefaultMusicDir()
	}
	MusicDir = musicDir

	if err := os.MkdirAll(MusicDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create music directory %s: %w", MusicDir, err)
	}

	DatabasePath = filepath.Join(MusicDir, DatabaseFileName)
	if settings.DatabasePath != "" {
		if DatabasePath, err = ExpandPath(settings.DatabasePath); err != nil {
			return err
		}
	}

	LogFile = filepath.Join(os.TempDir(), LogFileName)
	if settings.LogFile != "" {
		if LogFile, err = ExpandPath(settings.LogFile); err != nil {
			return err
		}
	}

	return nil
}

// DefaultMusicDir returns the XDG music directory, falling back to ~/Music
func DefaultMusicDir() string {
	if xdg.UserDirs.Music != "" {
		return xdg.UserDirs.Music
	}
	return filepath.Join(xdg.Home, "Music")
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
