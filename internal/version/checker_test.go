package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"same version", "2025.09.26", "2025.09.26", false},
		{"day upgrade", "2025.09.27", "2025.09.26", true},
		{"month upgrade", "2025.10.01", "2025.09.30", true},
		{"year upgrade", "2026.01.01", "2025.12.31", true},
		{"older release", "2024.12.31", "2025.01.01", false},
		{"leading zeros", "2025.09.05", "2025.9.4", true},
		{"nightly suffix", "2025.09.26-nightly", "2025.09.25", true},
		{"different lengths", "2025.09.26.1", "2025.09.26", true},
		{"semver patch", "0.0.29", "0.0.28", true},
		{"build metadata", "0.0.29+build123", "0.0.28", true},
		{"both pre-release", "0.0.29-beta", "0.0.29-alpha", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isNewerVersion(tt.latest, tt.current)
			if result != tt.expected {
				t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, result, tt.expected)
			}
		})
	}
}

func withReleasesURL(t *testing.T, url string) {
	t.Helper()
	old := ReleasesURL
	ReleasesURL = url
	t.Cleanup(func() { ReleasesURL = old })
}

func TestCheckForUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"2025.10.22","name":"yt-dlp 2025.10.22","html_url":"https://example.test/release"}`))
	}))
	defer srv.Close()
	withReleasesURL(t, srv.URL)

	tests := []struct {
		current   string
		available bool
	}{
		{"2025.09.26\n", true},
		{"2025.10.22", false},
	}

	for _, tt := range tests {
		info, err := CheckForUpdate(context.Background(), srv.Client(), tt.current)
		if err != nil {
			t.Fatalf("CheckForUpdate(%q) error = %v", tt.current, err)
		}
		if info.Available != tt.available {
			t.Errorf("CheckForUpdate(%q).Available = %v, want %v", tt.current, info.Available, tt.available)
		}
		if info.Latest != "2025.10.22" {
			t.Errorf("Latest = %q", info.Latest)
		}
		if info.URL != "https://example.test/release" {
			t.Errorf("URL = %q", info.URL)
		}
	}
}

func TestCheckForUpdate_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	withReleasesURL(t, srv.URL)

	if _, err := CheckForUpdate(context.Background(), srv.Client(), "2025.01.01"); err == nil {
		t.Error("expected error for non-200 status")
	}
}
