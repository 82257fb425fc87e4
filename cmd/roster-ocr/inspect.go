package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/roster-ocr/internal/config"
	"github.com/ironsheep/roster-ocr/internal/detection"
	"github.com/ironsheep/roster-ocr/internal/extract"
	"github.com/ironsheep/roster-ocr/internal/geometry"
	"github.com/ironsheep/roster-ocr/internal/imaging"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [image]",
	Short: "Show how a screenshot would be processed, without running OCR",
	Long: `Inspect a roster screenshot and print the image properties, the probed
row pitch, and the chunk plan an extraction would use. No OCR runs, so
this is a fast way to check the configuration against a screenshot.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		imagePath := cfg.Image.Input
		if len(args) > 0 {
			imagePath = args[0]
		}
		if imagePath == "" {
			return fmt.Errorf("no image path given; pass one as an argument or set image.input in the config")
		}

		img, desc, err := imaging.Load(imagePath)
		if err != nil {
			return err
		}
		fmt.Printf("Image: %dx%d %s (%s), %s\n",
			desc.Width, desc.Height, desc.Format, formatBytes(desc.FileSizeBytes), desc.ColorDepth)
		fmt.Printf("Estimated processing time: %s\n", extract.EstimateDuration(desc.Height))
		fmt.Println()

		proc := cfg.Processing
		if proc.AutoAdjust {
			if preset, ok := cfg.SizeForHeight(desc.Height); ok {
				proc.RowsPerChunk = preset.RowsPerChunk
				proc.OverlapRows = preset.OverlapRows
				fmt.Printf("Clan size preset: %s (%d rows per chunk, %d overlap rows)\n",
					preset.Name, preset.RowsPerChunk, preset.OverlapRows)
			}
		}

		pitch, perr := detection.EstimateRowPitch(img)
		if perr != nil {
			fmt.Printf("Row pitch: not detected (%v)\n", perr)
		} else {
			fmt.Printf("Row pitch: %d px over %d bands (confidence %.2f)\n",
				pitch.RowHeight, pitch.Bands, pitch.Confidence)
		}

		rowHeight := proc.ExpectedRowHeight
		if rowHeight > 0 {
			fmt.Printf("Configured row height: %d px\n", rowHeight)
		} else {
			if perr != nil {
				return fmt.Errorf("failed to probe row pitch (set expected_row_height explicitly): %w", perr)
			}
			rowHeight = pitch.RowHeight
		}

		plan, err := geometry.Plan(desc.Width, desc.Height, geometry.Params{
			ExpectedRowHeight: rowHeight,
			RowsPerChunk:      proc.RowsPerChunk,
			OverlapRows:       proc.OverlapRows,
			ScaleLadder:       cfg.OCR.ScaleLadder,
			MaxWidth:          cfg.OCR.MaxWidth,
			MaxHeight:         cfg.OCR.MaxHeight,
			MaxPixels:         cfg.OCR.MaxPixels,
		})
		if err != nil {
			return err
		}
		regions, err := geometry.Regions(plan, desc.Width, geometry.Ratios{
			Name:   cfg.Layout.NameWidthRatio,
			Points: cfg.Layout.PointsWidthRatio,
		})
		if err != nil {
			return err
		}
		split := regions[1].X0

		fmt.Println()
		fmt.Printf("Chunk plan: %d chunks of %d rows, %d overlap, name/points split at column %d\n",
			len(plan.Chunks), plan.RowSpan, plan.Overlap, split)
		for _, c := range plan.Chunks {
			fmt.Printf("  %2d: rows [%d, %d) at scale %g\n", c.Index, c.StartRow, c.EndRow, c.Scale)
		}
		fmt.Printf("Estimated roster rows: %d\n", desc.Height/rowHeight)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
