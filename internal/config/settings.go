package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the user configuration stored in settings.yaml
type Settings struct {
	MusicDir             string   `yaml:"music_dir,omitempty"`
	DatabasePath         string   `yaml:"database_path,omitempty"`
	LogFile              string   `yaml:"log_file,omitempty"`
	LogLevel             string   `yaml:"log_level"`
	TickRateMs           int      `yaml:"tick_rate_ms"`
	Extensions           []string `yaml:"extensions"`
	SearchCount          int      `yaml:"search_count"`
	AudioFormat          string   `yaml:"audio_format"`
	FlacCompressionLevel int      `yaml:"flac_compression_level"`
	FFmpegPath           string   `yaml:"ffmpeg_path"`
	YtdlpPath            string   `yaml:"ytdlp_path,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:             "info",
		TickRateMs:           200,
		Extensions:           []string{".flac"},
		SearchCount:          5,
		AudioFormat:          "opus",
		FlacCompressionLevel: 12,
		FFmpegPath:           "ffmpeg",
	}
}

// TickRate returns the TUI refresh interval
func (s *Settings) TickRate() time.Duration {
	if s.TickRateMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(s.TickRateMs) * time.Millisecond
}

// HasExtension reports whether a file name matches one of the configured extensions
func (s *Settings) HasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// LoadSettings reads settings from a YAML file, filling unset values with defaults
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("invalid settings.yaml format: %w", err)
	}

	if len(settings.Extensions) == 0 {
		settings.Extensions = DefaultSettings().Extensions
	}
	if settings.SearchCount <= 0 {
		settings.SearchCount = DefaultSettings().SearchCount
	}

	return settings, nil
}

// SaveSettings writes settings to a YAML file
func SaveSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	return os.WriteFile(path, data, FilePermissions)
}
