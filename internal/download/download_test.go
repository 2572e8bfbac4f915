package download

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseSearchOutput(t *testing.T) {
	output := `{"id": "abc", "title": "First Song", "channel": "Band", "duration": 215.0, "thumbnail": "https://i.ytimg.com/vi/abc/hq.webp", "webpage_url": "https://www.youtube.com/watch?v=abc"}
WARNING: something unrelated

{"id": "def", "title": "Second", "uploader": "Someone", "duration": 3725}
{"title": "no id"}
`

	results, err := ParseSearchOutput(output)
	if err != nil {
		t.Fatalf("ParseSearchOutput() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.ID != "abc" || first.Title != "First Song" || first.Artist() != "Band" {
		t.Errorf("first = %+v", first)
	}
	if first.FormatDuration() != "3:35" {
		t.Errorf("FormatDuration() = %q", first.FormatDuration())
	}

	second := results[1]
	if second.Artist() != "Someone" {
		t.Errorf("Artist() = %q, want uploader fallback", second.Artist())
	}
	if second.URL() != "https://www.youtube.com/watch?v=def" {
		t.Errorf("URL() = %q", second.URL())
	}
	if second.FormatDuration() != "1:02:05" {
		t.Errorf("FormatDuration() = %q", second.FormatDuration())
	}
}

func TestParseSearchOutput_Invalid(t *testing.T) {
	if _, err := ParseSearchOutput(`{"id": `); err == nil {
		t.Error("expected error for truncated json")
	}
}

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		query string
		count int
		want  string
	}{
		{"daft punk", 5, "ytsearch5:daft punk"},
		{"x", 0, "ytsearch1:x"},
	}

	for _, tt := range tests {
		if got := SearchQuery(tt.query, tt.count); got != tt.want {
			t.Errorf("SearchQuery(%q, %d) = %q, want %q", tt.query, tt.count, got, tt.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"AC/DC: Back in Black": "AC_DC_ Back in Black",
		"  spaced  ":           "spaced",
		"100% pure":            "100_ pure",
		"..":                   "untitled",
		"":                     "untitled",
	}

	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServicePaths(t *testing.T) {
	s := NewService(Options{MusicDir: "/music"})

	if got := s.AudioPath("Song: One"); got != filepath.Join("/music", "Song_ One.opus") {
		t.Errorf("AudioPath() = %q", got)
	}
	if got := s.FLACPath("Song"); got != filepath.Join("/music", "Song.flac") {
		t.Errorf("FLACPath() = %q", got)
	}
}

func TestConverterArgs(t *testing.T) {
	c := NewConverter("", 99)

	want := []string{
		"-hide_banner", "-loglevel", "error", "-n",
		"-i", "in.opus",
		"-compression_level", "12",
		"out.flac",
	}
	if got := c.Args("in.opus", "out.flac"); !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
	if c.ffmpeg != "ffmpeg" {
		t.Errorf("ffmpeg = %q, want default", c.ffmpeg)
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(2, 2, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestToJPEG(t *testing.T) {
	out, err := ToJPEG(pngBytes(t), "image/png")
	if err != nil {
		t.Fatalf("ToJPEG() error = %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not jpeg: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("size = %dx%d, want 8x8", cfg.Width, cfg.Height)
	}

	if _, err := ToJPEG([]byte("garbage"), ""); err == nil {
		t.Error("expected error for undecodable data")
	}
	if _, err := ToJPEG([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "), ""); err == nil {
		t.Error("expected error for truncated webp")
	}
}

func TestFetchThumbnail(t *testing.T) {
	data := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	out, err := FetchThumbnail(context.Background(), server.Client(), server.URL+"/thumb.png")
	if err != nil {
		t.Fatalf("FetchThumbnail() error = %v", err)
	}
	if len(out) < 2 || out[0] != 0xFF || out[1] != 0xD8 {
		t.Error("expected jpeg magic bytes")
	}

	if _, err := FetchThumbnail(context.Background(), server.Client(), server.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}
