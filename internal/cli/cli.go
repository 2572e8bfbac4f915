// Package cli implements the non-interactive subcommands: downloading,
// listing, removing, searching and importing catalog songs, plus keybinding
// and environment maintenance.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/studiowebux/music-manager/internal/config"
	"github.com/studiowebux/music-manager/internal/database"
	"github.com/studiowebux/music-manager/internal/logging"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

// Env carries the resolved settings and streams a command runs with
type Env struct {
	Settings *config.Settings
	Out      io.Writer
	Err      io.Writer
	Prompt   *Prompter

	// Paths default to the resolved config paths
	DatabasePath string
	MusicDir     string
	KeybindsPath string
}

// Setup loads the configuration, opens the log file and returns an Env bound
// to the process streams
func Setup() (*Env, error) {
	if err := config.Initialize(); err != nil {
		return nil, err
	}

	if _, err := logging.Setup(config.LogFile, config.Current.LogLevel); err != nil {
		return nil, err
	}

	return &Env{
		Settings:     config.Current,
		Out:          os.Stdout,
		Err:          os.Stderr,
		Prompt:       NewPrompter(os.Stdin, os.Stderr),
		DatabasePath: config.DatabasePath,
		MusicDir:     config.MusicDir,
		KeybindsPath: config.KeybindsFile,
	}, nil
}

// OpenCatalog opens the song catalog, running pending migrations
func (e *Env) OpenCatalog() (*database.Manager, error) {
	catalog, err := database.NewManager(e.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func (e *Env) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.Out, format, args...)
}

func (e *Env) success(format string, args ...interface{}) {
	fmt.Fprintf(e.Err, "%s%s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
}

func (e *Env) warn(format string, args ...interface{}) {
	fmt.Fprintf(e.Err, "%s%s%s\n", colorYellow, fmt.Sprintf(format, args...), colorReset)
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
