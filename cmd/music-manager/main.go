package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/music-manager/internal/cli"
	"github.com/studiowebux/music-manager/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "music-manager",
	Short: "Music library manager",
	Long: `music-manager downloads tracks as FLAC, keeps them in a SQLite catalog
and edits their tags in an interactive TUI.

Run without arguments to start the TUI on the music directory.

Examples:
  music-manager                          # Edit the music directory
  music-manager edit --dir ~/Downloads   # Edit another directory
  music-manager download daft punk one more time
  music-manager list -o json --filter "[?album=='Discovery'].title"
  music-manager remove --title "one more time"
  music-manager doctor                   # Check yt-dlp, ffmpeg and the catalog`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run("")
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit track tags in the interactive TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(flagDir)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <query...>",
	Short: "Search, download and tag a track",
	Long: `Search the video platform, download the chosen result as FLAC into the
music directory, prompt for its tags and add it to the catalog.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.Download(cmd.Context(), env, cli.DownloadOptions{
			Query:      strings.Join(args, " "),
			SearchOnly: flagSearchOnly,
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged songs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.List(env, cli.ListOptions{
			OutputFormat: flagOutput,
			Filter:       flagFilter,
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove songs from the catalog and delete their files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.Remove(env, cli.RemoveOptions{
			ID:        flagID,
			Title:     flagTitle,
			KeepFiles: flagKeepFiles,
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Search the catalog by title, artist or album",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.Search(env, strings.Join(args, " "))
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Catalog audio files that are not yet known",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		dir := ""
		if len(args) > 0 {
			dir = args[0]
		}
		return cli.Import(env, dir)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage TUI keybindings",
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write keybinds.json with the default bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.KeybindsInit(env, flagForce)
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate keybinds.json and report conflicts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.KeybindsCheck(env)
	},
}

var keybindsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective bindings of every widget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.KeybindsList(env)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools, the catalog and keybindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup()
		if err != nil {
			return err
		}
		return cli.Doctor(cmd.Context(), env)
	},
}

// Flags for edit
var flagDir string

// Flags for download
var flagSearchOnly bool

// Flags for list
var (
	flagOutput string
	flagFilter string
)

// Flags for remove
var (
	flagID        int64
	flagTitle     string
	flagKeepFiles bool
)

// Flags for keybinds init
var flagForce bool

func init() {
	editCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "Directory to edit (default: music directory)")

	downloadCmd.Flags().BoolVar(&flagSearchOnly, "search-only", false, "Print the search results without downloading")

	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	listCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath expression applied to the song list")

	removeCmd.Flags().Int64Var(&flagID, "id", 0, "Catalog id of the song to remove")
	removeCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Search term; prompts for the songs to remove")
	removeCmd.Flags().BoolVar(&flagKeepFiles, "keep-files", false, "Only remove catalog rows")
	removeCmd.MarkFlagsMutuallyExclusive("id", "title")

	keybindsInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing keybinds.json")

	keybindsCmd.AddCommand(keybindsInitCmd)
	keybindsCmd.AddCommand(keybindsCheckCmd)
	keybindsCmd.AddCommand(keybindsListCmd)

	// Add subcommands
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(doctorCmd)
}
