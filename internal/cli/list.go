package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studiowebux/music-manager/internal/filter"
	"github.com/studiowebux/music-manager/internal/library"
	"gopkg.in/yaml.v3"
)

// UnknownArtist is printed for songs without an artist
const UnknownArtist = "Unknown"

// ListOptions configures the list command
type ListOptions struct {
	OutputFormat string // text, json, yaml
	Filter       string // JMESPath expression applied to the rows
}

// songRow is the serialized form of a catalog song
type songRow struct {
	ID           int64    `json:"id" yaml:"id"`
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	Artists      []string `json:"artists,omitempty" yaml:"artists,omitempty"`
	Album        string   `json:"album,omitempty" yaml:"album,omitempty"`
	Genre        string   `json:"genre,omitempty" yaml:"genre,omitempty"`
	FileName     string   `json:"file_name" yaml:"file_name"`
	Path         string   `json:"path" yaml:"path"`
	ExternalID   string   `json:"youtube_id,omitempty" yaml:"youtube_id,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	DateAdded    string   `json:"date_added,omitempty" yaml:"date_added,omitempty"`
}

func toRows(tracks []*library.Track) []songRow {
	rows := make([]songRow, 0, len(tracks))
	for _, t := range tracks {
		row := songRow{
			ID:           t.ID,
			Title:        deref(t.Title),
			Artists:      t.Artists,
			Album:        deref(t.Album),
			Genre:        deref(t.Genre),
			FileName:     t.DisplayName,
			Path:         t.Path,
			ExternalID:   deref(t.ExternalID),
			ThumbnailURL: deref(t.ThumbnailURL),
		}
		if !t.DateAdded.IsZero() {
			row.DateAdded = t.DateAdded.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, row)
	}
	return rows
}

// List prints every catalog song
func List(env *Env, opts ListOptions) error {
	if opts.Filter != "" && !filter.IsValidJMESPath(opts.Filter) {
		return fmt.Errorf("invalid filter expression '%s'", opts.Filter)
	}

	catalog, err := env.OpenCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	tracks, err := catalog.QueryAll()
	if err != nil {
		return err
	}

	output, err := formatSongs(tracks, opts)
	if err != nil {
		return err
	}
	env.printf("%s", output)
	return nil
}

// formatSongs renders tracks in the requested format.
// A filter result is printed as JSON unless yaml output was asked for.
func formatSongs(tracks []*library.Track, opts ListOptions) (string, error) {
	rows := toRows(tracks)

	var value interface{} = rows
	if opts.Filter != "" {
		filtered, err := filter.Values(rows, opts.Filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		value = filtered
	}

	switch opts.OutputFormat {
	case "yaml":
		data, err := yaml.Marshal(value)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "json":
		return marshalJSON(value)

	case "text", "":
		if opts.Filter != "" {
			return marshalJSON(value)
		}
		if len(tracks) == 0 {
			return "No songs in catalog\n", nil
		}
		var sb strings.Builder
		for i, t := range tracks {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, songLine(t)))
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format '%s' (use text, json or yaml)", opts.OutputFormat)
	}
}

func marshalJSON(value interface{}) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// songLine renders "Title - Artist [ID: n]"
func songLine(t *library.Track) string {
	return fmt.Sprintf("%s [ID: %d]", songLabel(t), t.ID)
}

// songLabel renders "Title - Artist", falling back to the file name and Unknown
func songLabel(t *library.Track) string {
	title := deref(t.Title)
	if title == "" {
		title = t.DisplayName
	}
	artist := UnknownArtist
	if len(t.Artists) > 0 {
		artist = strings.Join(t.Artists, ", ")
	}
	return title + " - " + artist
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
