package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/studiowebux/music-manager/internal/database"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
	"github.com/studiowebux/music-manager/internal/tagstore"
)

// ImportExtensions are the audio formats the import scan picks up
var ImportExtensions = []string{".flac", ".mp3", ".m4a", ".ogg", ".opus"}

// ImportStats counts the outcome of an import scan
type ImportStats struct {
	Added   int
	Skipped int
	Failed  int
}

// probeStore reads tags with the format prober and never writes
type probeStore struct {
	read func(path string) (library.Tags, error)
}

func (s probeStore) Read(path string) (library.Tags, error) {
	return s.read(path)
}

func (s probeStore) Write(string, library.Tags) error {
	return tagstore.ErrReadOnly
}

// Import scans dir for audio files and catalogs those not yet known
func Import(env *Env, dir string) error {
	if dir == "" {
		dir = env.MusicDir
	}

	catalog, err := env.OpenCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	stats, err := importDir(catalog, dir, tagstore.Probe)
	if err != nil {
		return err
	}

	env.success("Imported %d song(s), %d already cataloged, %d unreadable", stats.Added, stats.Skipped, stats.Failed)
	return nil
}

// importDir walks dir and inserts a row for each unknown audio file read by read
func importDir(catalog songCatalog, dir string, read func(path string) (library.Tags, error)) (ImportStats, error) {
	log := logging.For(logging.TargetCatalog)
	mgr := library.NewManager(probeStore{read: read}, nil)

	var stats ImportStats
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isAudioFile(d.Name()) {
			return nil
		}

		if _, err := catalog.ByPath(path); err == nil {
			stats.Skipped++
			return nil
		} else if !errors.Is(err, database.ErrNotFound) {
			return err
		}

		track, err := mgr.LoadFromFile(path)
		if err != nil {
			log.WithError(err).Warn("skipping unreadable file")
			stats.Failed++
			return nil
		}

		if _, err := catalog.Insert(track); err != nil {
			return err
		}
		log.WithField("id", track.ID).Infof("Imported %s", path)
		stats.Added++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to import %s: %w", dir, err)
	}

	return stats, nil
}

func isAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImportExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
