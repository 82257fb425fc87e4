package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "roster-ocr",
	Short: "Extract member nicknames and points from clan roster screenshots",
	Long: `roster-ocr reads a stitched clan roster screenshot and produces a CSV of
member nicknames and their weekly points.

The screenshot is cut into overlapping horizontal chunks sized to the
roster row height, each chunk is split into the name and points columns,
and both columns are recognized with Tesseract. Recognized lines are
cleaned, validated, paired into records, and deduplicated across chunk
overlaps before the roster is written out.

Typical use:
  roster-ocr extract roster.png -o clan_points.csv
  roster-ocr inspect roster.png
  roster-ocr doctor`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.roster-ocr/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Results go to stdout, logs to stderr
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	rootCmd.AddCommand(versionCmd)
}
