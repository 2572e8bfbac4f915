package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/studiowebux/music-manager/internal/database"
	"github.com/studiowebux/music-manager/internal/download"
	"github.com/studiowebux/music-manager/internal/library"
	"github.com/studiowebux/music-manager/internal/logging"
	"github.com/studiowebux/music-manager/internal/tagstore"
)

// UnknownAlbum is the album offered when the user has nothing better
const UnknownAlbum = "Unknown"

// DownloadOptions configures the download command
type DownloadOptions struct {
	Query      string
	SearchOnly bool
}

// trackDetails are the answers collected after a download
type trackDetails struct {
	FileName string
	Title    string
	Artist   string
	Album    string
}

// songCatalog is the part of the catalog used when recording downloads and imports
type songCatalog interface {
	ByPath(path string) (*library.Track, error)
	Insert(t *library.Track) (int64, error)
	Update(t *library.Track) error
}

func (e *Env) downloadService() *download.Service {
	return download.NewService(download.Options{
		MusicDir:             e.MusicDir,
		AudioFormat:          e.Settings.AudioFormat,
		FlacCompressionLevel: e.Settings.FlacCompressionLevel,
		YtdlpPath:            e.Settings.YtdlpPath,
		FFmpegPath:           e.Settings.FFmpegPath,
	})
}

// Download searches for a track, downloads the chosen result as FLAC, tags it
// and records it in the catalog
func Download(ctx context.Context, env *Env, opts DownloadOptions) error {
	log := logging.For(logging.TargetDownload)
	svc := env.downloadService()

	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	fmt.Fprintf(env.Err, "Searching for: %s\n", query)
	results, err := svc.Search(ctx, query, env.Settings.SearchCount)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results for '%s'", query)
	}

	if opts.SearchOnly {
		for i, r := range results {
			env.printf("%s\n   %s\n", formatResult(i, r), r.URL())
		}
		return nil
	}

	idx, err := env.chooseResult(query, results)
	if err != nil {
		return err
	}
	result := results[idx]

	fmt.Fprintf(env.Err, "Downloading: %s\n", result.Title)
	path, err := svc.Fetch(ctx, result)
	if err != nil {
		return err
	}
	env.success("Saved %s", path)

	flacStore := tagstore.NewFLAC()
	mgr := library.NewManager(flacStore, library.NewOSFileSystem(".flac"))

	track, err := mgr.LoadFromFile(path)
	if err != nil {
		return err
	}

	details, err := env.askDetails(result, track)
	if err != nil {
		return err
	}
	if err := applyDetails(mgr, track, details); err != nil {
		return err
	}

	if result.Thumbnail != "" {
		if err := embedThumbnail(ctx, flacStore, track.Path, result.Thumbnail); err != nil {
			log.WithError(err).Warn("cover not embedded")
			env.warn("Cover not embedded: %v", err)
		}
	}

	catalog, err := env.OpenCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	if err := catalogTrack(catalog, track, result); err != nil {
		return err
	}

	env.success("Added %s [ID: %d]", songLabel(track), track.ID)
	return nil
}

// askDetails prompts for the file name and tags, offering values from the search result
func (e *Env) askDetails(r download.SearchResult, t *library.Track) (trackDetails, error) {
	var d trackDetails
	var err error

	if d.FileName, err = e.Prompt.Ask("File name", t.DisplayName); err != nil {
		return d, err
	}

	defaultTitle := r.Title
	if t.Title != nil && *t.Title != "" {
		defaultTitle = *t.Title
	}
	if d.Title, err = e.Prompt.Ask("Title", defaultTitle); err != nil {
		return d, err
	}

	defaultArtist := r.Artist()
	if len(t.Artists) > 0 {
		defaultArtist = strings.Join(t.Artists, library.ArtistSeparator)
	}
	if d.Artist, err = e.Prompt.Ask("Artist (separate several with ':')", defaultArtist); err != nil {
		return d, err
	}

	defaultAlbum := UnknownAlbum
	if t.Album != nil && *t.Album != "" {
		defaultAlbum = *t.Album
	}
	if d.Album, err = e.Prompt.Ask("Album", defaultAlbum); err != nil {
		return d, err
	}

	return d, nil
}

// applyDetails renames the file when asked and writes the tags
func applyDetails(mgr *library.Manager, t *library.Track, d trackDetails) error {
	if d.FileName != "" && d.FileName != t.DisplayName &&
		d.FileName != strings.TrimSuffix(t.DisplayName, filepath.Ext(t.DisplayName)) {
		if err := mgr.SetField(t, library.FieldDisplayName, d.FileName); err != nil {
			return err
		}
	}

	edits := []struct {
		field library.Field
		value string
	}{
		{library.FieldTitle, d.Title},
		{library.FieldArtists, d.Artist},
		{library.FieldAlbum, d.Album},
	}
	for _, edit := range edits {
		if err := mgr.SetField(t, edit.field, edit.value); err != nil {
			return err
		}
	}

	return mgr.PersistTags(t)
}

// catalogTrack inserts t, or refreshes the row already stored at its path
func catalogTrack(catalog songCatalog, t *library.Track, r download.SearchResult) error {
	if r.ID != "" {
		t.ExternalID = library.StringPtr(r.ID)
	}
	if r.Thumbnail != "" {
		t.ThumbnailURL = library.StringPtr(r.Thumbnail)
	}

	existing, err := catalog.ByPath(t.Path)
	switch {
	case err == nil:
		t.ID = existing.ID
		t.DateAdded = existing.DateAdded
		if t.Genre == nil {
			t.Genre = existing.Genre
		}
		return catalog.Update(t)
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	_, err = catalog.Insert(t)
	return err
}

// embedThumbnail downloads the thumbnail and stores it as the front cover.
// Files that already carry a picture are left alone.
func embedThumbnail(ctx context.Context, store *tagstore.FLAC, path, url string) error {
	has, err := store.HasCover(path)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	jpeg, err := download.FetchThumbnail(ctx, nil, url)
	if err != nil {
		return err
	}
	return store.EmbedCover(path, jpeg, "image/jpeg")
}
