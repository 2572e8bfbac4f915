package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/music-manager/internal/config"
	"github.com/studiowebux/music-manager/internal/database"
	"github.com/studiowebux/music-manager/internal/keybinds"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
	"github.com/studiowebux/music-manager/internal/tagstore"
)

// New creates a new TUI model around an editor
func New(editor *Editor, fs library.FileSystem, settings *config.Settings) Model {
	return Model{
		editor:   editor,
		fs:       fs,
		tickRate: settings.TickRate(),
		logView:  viewport.New(80, 10),
	}
}

// Run starts the TUI on dir, or on the configured music directory when dir is empty
func Run(dir string) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}
	settings := config.Current

	ring, err := logging.Setup(config.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	log := logging.For(logging.TargetEditor)

	if dir == "" {
		dir = config.MusicDir
	}
	if expanded, err := config.ExpandPath(dir); err == nil {
		dir = expanded
	}
	if _, err := os.Stat(dir); err != nil {
		return err
	}

	keymap, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.Warnf("Using default keybinds: %v", err)
		keymap = keybinds.DefaultKeymap()
	}

	fs := library.NewOSFileSystem(settings.Extensions...)
	mgr := library.NewManager(tagstore.NewAuto(), fs)

	opts := EditorOptions{
		Dir:    dir,
		Keymap: keymap,
		Logs:   ring,
	}

	// The editor works without a catalog; edits then only touch files
	var closer func() error
	catalog, err := database.NewManager(config.DatabasePath)
	if err != nil {
		log.Warnf("Catalog unavailable: %v", err)
	} else {
		opts.Catalog = catalog
		closer = catalog.Close
	}

	editor, err := NewEditor(mgr, opts)
	if err != nil {
		if closer != nil {
			closer()
		}
		return err
	}

	m := New(editor, fs, settings)
	m.closer = closer

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err = p.Run()
	m.Cleanup()
	return err
}
