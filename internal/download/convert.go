package download

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/studiowebux/music-manager/internal/logging"
)

// Converter turns downloaded audio into FLAC with ffmpeg
type Converter struct {
	ffmpeg           string
	compressionLevel int
}

// NewConverter creates a converter. An empty path means "ffmpeg" from PATH.
func NewConverter(ffmpegPath string, compressionLevel int) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if compressionLevel < 0 || compressionLevel > 12 {
		compressionLevel = 12
	}
	return &Converter{ffmpeg: ffmpegPath, compressionLevel: compressionLevel}
}

// Args returns the ffmpeg arguments used to convert input into output
func (c *Converter) Args(input, output string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-n",
		"-i", input,
		"-compression_level", strconv.Itoa(c.compressionLevel),
		output,
	}
}

// ToFLAC runs ffmpeg and waits for it
func (c *Converter) ToFLAC(ctx context.Context, input, output string) error {
	log := logging.For(logging.TargetDownload)

	cmd := exec.CommandContext(ctx, c.ffmpeg, c.Args(input, output)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.WithField("input", input).WithField("output", output).Info("converting to flac")
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("failed to convert %s: %w: %s", input, err, msg)
		}
		return fmt.Errorf("failed to convert %s: %w", input, err)
	}
	return nil
}

// Available reports whether the ffmpeg binary can be found
func (c *Converter) Available() (string, bool) {
	path, err := exec.LookPath(c.ffmpeg)
	return path, err == nil
}
