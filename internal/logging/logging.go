// Package logging configures logrus for the application.
//
// Entries at or above the configured level are written to the log file. Every
// entry, down to trace, is mirrored into an in-memory Ring that the terminal UI
// renders in its log viewer. Entries are tagged with a "target" field naming
// the subsystem that produced them.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Targets used across the application
const (
	TargetEditor    = "editor"
	TargetTrackEdit = "track_edit"
	TargetKeybinds  = "keybinds"
	TargetCatalog   = "catalog"
	TargetDownload  = "download"
	TargetDefault   = "music_manager"

	// TargetField is the logrus field carrying the target name
	TargetField = "target"

	// DefaultRingSize is the number of entries kept for the log viewer
	DefaultRingSize = 1000
)

// Setup opens the log file and attaches a ring hook to the standard logger
func Setup(path string, level string) (*Ring, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	ring := configure(logrus.StandardLogger(), f, level)
	logrus.WithField("ts", time.Now().Format(time.RFC3339)).Info("session start")
	return ring, nil
}

// configure sends entries at or above level to w and every entry to the returned ring
func configure(logger *logrus.Logger, w io.Writer, level string) *Ring {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	ring := NewRing(DefaultRingSize)

	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.TraceLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})
	logger.AddHook(&writer.Hook{Writer: w, LogLevels: logrus.AllLevels[:lvl+1]})
	logger.AddHook(ring)
	return ring
}

// For returns an entry scoped to a target
func For(target string) *logrus.Entry {
	return logrus.WithField(TargetField, target)
}
