package download

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
)

// SearchResult is a single video returned by a yt-dlp search
type SearchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	Thumbnail  string  `json:"thumbnail"`
	Duration   float64 `json:"duration"`
	WebpageURL string  `json:"webpage_url"`
}

// Artist returns the channel name, falling back to the uploader
func (r SearchResult) Artist() string {
	if r.Channel != "" {
		return r.Channel
	}
	return r.Uploader
}

// URL returns the page to download, building one from the id when yt-dlp omitted it
func (r SearchResult) URL() string {
	if r.WebpageURL != "" {
		return r.WebpageURL
	}
	return fmt.Sprintf(VideoURLTemplate, r.ID)
}

// FormatDuration renders the duration as m:ss or h:mm:ss
func (r SearchResult) FormatDuration() string {
	total := int(r.Duration)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseSearchOutput decodes yt-dlp --dump-json output, one JSON object per line
func ParseSearchOutput(output string) ([]SearchResult, error) {
	var results []SearchResult

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}

		var r SearchResult
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("failed to parse search result: %w", err)
		}
		if r.ID == "" {
			continue
		}
		results = append(results, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search output: %w", err)
	}

	return results, nil
}

// SearchQuery builds the yt-dlp pseudo-URL for a search
func SearchQuery(query string, count int) string {
	if count <= 0 {
		count = 1
	}
	return fmt.Sprintf("ytsearch%d:%s", count, query)
}
