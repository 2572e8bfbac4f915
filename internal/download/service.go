package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/studiowebux/music-manager/internal/logging"
)

const (
	VideoURLTemplate = "https://www.youtube.com/watch?v=%s"

	DefaultSearchTimeout   = 60 * time.Second
	DefaultDownloadTimeout = 15 * time.Minute
)

// Options configures the external tools
type Options struct {
	MusicDir             string
	AudioFormat          string
	FlacCompressionLevel int
	YtdlpPath            string
	FFmpegPath           string
}

// Service searches and downloads audio with yt-dlp
type Service struct {
	opts      Options
	converter *Converter
}

// NewService creates a download service
func NewService(opts Options) *Service {
	if opts.AudioFormat == "" {
		opts.AudioFormat = "opus"
	}
	return &Service{
		opts:      opts,
		converter: NewConverter(opts.FFmpegPath, opts.FlacCompressionLevel),
	}
}

func (s *Service) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if s.opts.YtdlpPath != "" {
		cmd.SetExecutable(s.opts.YtdlpPath)
	}
	return cmd
}

// Search returns up to count videos matching query
func (s *Service) Search(ctx context.Context, query string, count int) ([]SearchResult, error) {
	log := logging.For(logging.TargetDownload)

	ctx, cancel := context.WithTimeout(ctx, DefaultSearchTimeout)
	defer cancel()

	log.WithField("query", query).Info("searching")

	result, err := s.command().
		DumpJSON().
		NoPlaylist().
		Run(ctx, SearchQuery(query, count))
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}

	results, err := ParseSearchOutput(result.Stdout)
	if err != nil {
		return nil, err
	}

	log.WithField("count", len(results)).Debug("search finished")
	return results, nil
}

// AudioPath returns where the downloaded audio for title lands
func (s *Service) AudioPath(title string) string {
	return filepath.Join(s.opts.MusicDir, SanitizeFileName(title)+"."+s.opts.AudioFormat)
}

// FLACPath returns where the converted file for title lands
func (s *Service) FLACPath(title string) string {
	return filepath.Join(s.opts.MusicDir, SanitizeFileName(title)+".flac")
}

// Fetch downloads the audio of r and converts it to FLAC.
// Steps whose output already exists are skipped.
func (s *Service) Fetch(ctx context.Context, r SearchResult) (string, error) {
	log := logging.For(logging.TargetDownload).WithField("id", r.ID)

	flacPath := s.FLACPath(r.Title)
	if exists(flacPath) {
		log.WithField("path", flacPath).Info("already converted")
		return flacPath, nil
	}

	audioPath := s.AudioPath(r.Title)
	if exists(audioPath) {
		log.WithField("path", audioPath).Info("already downloaded")
	} else if err := s.download(ctx, r, audioPath); err != nil {
		return "", err
	}

	if err := s.converter.ToFLAC(ctx, audioPath, flacPath); err != nil {
		return "", err
	}

	if err := os.Remove(audioPath); err != nil {
		log.WithError(err).Warn("failed to remove intermediate audio file")
	}

	return flacPath, nil
}

func (s *Service) download(ctx context.Context, r SearchResult, audioPath string) error {
	log := logging.For(logging.TargetDownload).WithField("id", r.ID)

	ctx, cancel := context.WithTimeout(ctx, DefaultDownloadTimeout)
	defer cancel()

	output := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".%(ext)s"

	log.WithField("url", r.URL()).Info("downloading")
	_, err := s.command().
		NoPlaylist().
		ExtractAudio().
		AudioFormat(s.opts.AudioFormat).
		AudioQuality("0").
		Output(output).
		Run(ctx, r.URL())
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", r.ID, err)
	}

	if !exists(audioPath) {
		return fmt.Errorf("download finished but %s is missing", audioPath)
	}
	return nil
}

// SanitizeFileName replaces characters that cannot appear in a file name
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"%", "_",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" || name == "." || name == ".." {
		return "untitled"
	}
	return name
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Version returns the version string reported by the yt-dlp binary
func (s *Service) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.command().Version(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to run yt-dlp: %w", err)
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Converter returns the ffmpeg converter used after downloads
func (s *Service) Converter() *Converter {
	return s.converter
}
