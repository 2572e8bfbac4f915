package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/studiowebux/music-manager/internal/version"
)

// check is one doctor finding
type check struct {
	name   string
	ok     bool
	detail string
}

// Doctor reports whether the external tools, catalog and keybinds are usable
func Doctor(ctx context.Context, env *Env) error {
	var checks []check
	svc := env.downloadService()

	ytdlpVersion, err := svc.Version(ctx)
	if err != nil {
		checks = append(checks, check{"yt-dlp", false, err.Error()})
	} else {
		checks = append(checks, check{"yt-dlp", true, ytdlpVersion})

		info, err := version.CheckForUpdate(ctx, nil, ytdlpVersion)
		switch {
		case err != nil:
			checks = append(checks, check{"yt-dlp release", true, "update check failed: " + err.Error()})
		case info.Available:
			checks = append(checks, check{"yt-dlp release", false, fmt.Sprintf("%s available (%s)", info.Latest, info.URL)})
		default:
			checks = append(checks, check{"yt-dlp release", true, "up to date"})
		}
	}

	if path, ok := svc.Converter().Available(); ok {
		checks = append(checks, check{"ffmpeg", true, path})
	} else {
		checks = append(checks, check{"ffmpeg", false, "not found in PATH"})
	}

	if info, err := os.Stat(env.MusicDir); err != nil || !info.IsDir() {
		checks = append(checks, check{"music dir", false, env.MusicDir + " is not a directory"})
	} else {
		checks = append(checks, check{"music dir", true, env.MusicDir})
	}

	checks = append(checks, catalogCheck(env))

	if result, err := checkKeybinds(env.KeybindsPath); err != nil {
		checks = append(checks, check{"keybinds", false, err.Error()})
	} else if result.HasErrors() {
		checks = append(checks, check{"keybinds", false, fmt.Sprintf("%d error(s), run 'keybinds check'", len(result.Errors))})
	} else {
		checks = append(checks, check{"keybinds", true, fmt.Sprintf("%d warning(s)", len(result.Warnings))})
	}

	failed := 0
	for _, c := range checks {
		mark := colorGreen + "✓" + colorReset
		if !c.ok {
			mark = colorRed + "✗" + colorReset
			failed++
		}
		env.printf("%s %-15s %s\n", mark, c.name, c.detail)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func catalogCheck(env *Env) check {
	catalog, err := env.OpenCatalog()
	if err != nil {
		return check{"catalog", false, err.Error()}
	}
	defer catalog.Close()

	count, err := catalog.GetCount()
	if err != nil {
		return check{"catalog", false, err.Error()}
	}
	return check{"catalog", true, fmt.Sprintf("%d song(s) in %s", count, env.DatabasePath)}
}
