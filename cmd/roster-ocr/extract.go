package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/roster-ocr/internal/config"
	"github.com/ironsheep/roster-ocr/internal/extract"
	"github.com/ironsheep/roster-ocr/internal/imaging"
	"github.com/ironsheep/roster-ocr/internal/ocr"
	"github.com/ironsheep/roster-ocr/internal/roster"
)

var (
	extractOutput  string
	extractWorkers int
	extractQuick   bool
	extractDebug   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Extract the roster from a screenshot and write it as CSV",
	Long: `Extract member nicknames and points from a roster screenshot.

The image path may be given as an argument or set as image.input in the
config file. Results are written to the --output path, or image.output
from the config (clan_points.csv by default).

Examples:
  roster-ocr extract roster.png
  roster-ocr extract roster.png -o week32.csv --workers 4
  roster-ocr extract roster.png --quick    # skip debug artifacts
  roster-ocr extract roster.png --debug    # force debug artifacts on`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.Processing.Workers = extractWorkers
		}
		if extractDebug {
			cfg.Debug.Enabled = true
		}
		if extractQuick {
			// Quick mode trades diagnostics for speed: no debug
			// artifacts, warnings only.
			cfg.Debug.Enabled = false
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			})))
		}

		imagePath := cfg.Image.Input
		if len(args) > 0 {
			imagePath = args[0]
		}
		if imagePath == "" {
			return errors.New("no image path given; pass one as an argument or set image.input in the config")
		}
		outPath := cfg.Image.Output
		if extractOutput != "" {
			outPath = extractOutput
		}

		// Header-only peek so the size estimate prints before the heavy work.
		desc, err := imaging.Peek(imagePath)
		if err != nil {
			return err
		}
		fmt.Printf("Image: %dx%d %s (%s)\n", desc.Width, desc.Height, desc.Format, formatBytes(desc.FileSizeBytes))
		fmt.Printf("Estimated processing time: %s\n", extract.EstimateDuration(desc.Height))

		logger := slog.Default()
		var sink *imaging.Sink
		if cfg.Debug.Enabled {
			sink, err = imaging.NewSink(cfg.Debug.Dir, cfg.Debug.SaveImages, cfg.Debug.SaveText, logger)
			if err != nil {
				return err
			}
		}
		engine := ocr.NewEngine(cfg.OCR.Language, cfg.OCR.TessdataPrefix, logger)

		result, err := extract.New(cfg, engine, sink, logger).Run(cmd.Context(), imagePath)
		if err != nil {
			return err
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := roster.WriteCSV(f, result.Entries); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}

		fmt.Printf("\nExtracted %d members in %s\n", len(result.Entries),
			result.Duration().Round(100*time.Millisecond))
		if n := len(result.Duplicates); n > 0 {
			fmt.Printf("  Overlap duplicates resolved: %d\n", n)
		}
		if n := result.RejectedLines(); n > 0 {
			fmt.Printf("  Lines rejected by validation: %d\n", n)
		}
		if failed := result.FailedChunks(); len(failed) > 0 {
			fmt.Printf("  Chunks with no recognition:  %v\n", failed)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output CSV path (default: image.output from config)")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "chunks processed concurrently (default: processing.workers from config)")
	extractCmd.Flags().BoolVar(&extractQuick, "quick", false, "skip debug artifacts for a faster run")
	extractCmd.Flags().BoolVar(&extractDebug, "debug", false, "write debug artifacts even if disabled in config")

	rootCmd.AddCommand(extractCmd)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
