// Package version reports whether the installed yt-dlp is behind the latest release.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const checkTimeout = 5 * time.Second

// ReleasesURL is the GitHub endpoint for the latest yt-dlp release
var ReleasesURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// UpdateInfo describes the result of a release check
type UpdateInfo struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

// CheckForUpdate compares currentVersion with the latest published release.
// yt-dlp versions are dates such as 2025.09.26 and compare part by part.
func CheckForUpdate(ctx context.Context, client *http.Client, currentVersion string) (UpdateInfo, error) {
	if client == nil {
		client = &http.Client{Timeout: checkTimeout}
	}

	info := UpdateInfo{Current: strings.TrimPrefix(strings.TrimSpace(currentVersion), "v")}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return info, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "music-manager")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return info, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return info, fmt.Errorf("failed to decode response: %w", err)
	}

	info.Latest = strings.TrimPrefix(release.TagName, "v")
	info.URL = release.HTMLURL
	info.Available = info.Latest != "" && isNewerVersion(info.Latest, info.Current)
	return info, nil
}

// isNewerVersion compares two dotted versions and returns true if latest > current
// Supports versions like "2025.09.26", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
