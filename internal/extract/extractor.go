package extract

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/roster-ocr/internal/config"
	"github.com/ironsheep/roster-ocr/internal/detection"
	"github.com/ironsheep/roster-ocr/internal/geometry"
	"github.com/ironsheep/roster-ocr/internal/imaging"
	"github.com/ironsheep/roster-ocr/internal/ocr"
	"github.com/ironsheep/roster-ocr/internal/roster"
)

// Recognizer recognizes text lines in a preprocessed region raster.
// *ocr.Engine is the production implementation.
type Recognizer interface {
	Recognize(ctx context.Context, pngData []byte, profile ocr.Profile) ([]ocr.Line, error)
}

// Extractor runs the full pipeline over one screenshot: plan chunks,
// preprocess and recognize each chunk's two regions, parse, reconcile.
type Extractor struct {
	cfg    *config.Config
	engine Recognizer
	sink   *imaging.Sink
	logger *slog.Logger
}

// New assembles an extractor. sink may be nil to disable debug
// artifacts; a nil logger falls back to slog.Default().
func New(cfg *config.Config, engine Recognizer, sink *imaging.Sink, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, engine: engine, sink: sink, logger: logger}
}

// Run extracts the roster from the screenshot at imagePath.
//
// Per-chunk failures are absorbed into the result's diagnostics; only
// an invalid configuration, an unreadable image, or an entirely empty
// reconciliation fail the run. An empty reconciliation is reported as
// *roster.EmptyResultError. Cancelling ctx stops the run between
// chunks and discards all partial results.
func (e *Extractor) Run(ctx context.Context, imagePath string) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)

	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	img, desc, err := imaging.Load(imagePath)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}
	logger.Info("image loaded",
		"path", imagePath,
		"size", fmt.Sprintf("%dx%d", desc.Width, desc.Height),
		"format", desc.Format)

	plan, regions, err := e.plan(img, desc, logger)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	outcomes := e.runChunks(ctx, img, plan, regions)
	if err := ctx.Err(); err != nil {
		logger.Warn("run cancelled, discarding partial results")
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}

	perChunk := make([][]roster.CandidateRecord, len(outcomes))
	diags := make([]ChunkDiagnostics, len(outcomes))
	rejected := 0
	for i, out := range outcomes {
		perChunk[i] = out.records
		diags[i] = out.diag
		rejected += len(out.diag.ValidationErrors)
	}

	entries, dups := roster.Reconcile(perChunk, plan)
	logger.Info("roster reconciled",
		"entries", len(entries),
		"duplicates", len(dups),
		"rejected_lines", rejected,
		"duration", time.Since(started))

	if len(entries) == 0 {
		return nil, &roster.EmptyResultError{Chunks: len(plan.Chunks), ValidationErrors: rejected}
	}

	return &Result{
		RunID:      runID,
		Image:      desc,
		Plan:       plan,
		Entries:    entries,
		Duplicates: dups,
		Chunks:     diags,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}, nil
}

// plan resolves the effective chunking parameters and computes the
// chunk plan and the per-chunk column regions.
func (e *Extractor) plan(img image.Image, desc imaging.Descriptor, logger *slog.Logger) (geometry.ChunkPlan, []geometry.RegionSpec, error) {
	proc := e.cfg.Processing
	if proc.AutoAdjust {
		if preset, ok := e.cfg.SizeForHeight(desc.Height); ok {
			proc.RowsPerChunk = preset.RowsPerChunk
			proc.OverlapRows = preset.OverlapRows
			logger.Info("clan size preset applied",
				"preset", preset.Name,
				"rows_per_chunk", proc.RowsPerChunk,
				"overlap_rows", proc.OverlapRows)
		}
	}

	rowHeight := proc.ExpectedRowHeight
	if rowHeight <= 0 {
		pitch, err := detection.EstimateRowPitch(img)
		if err != nil {
			return geometry.ChunkPlan{}, nil,
				fmt.Errorf("failed to probe row pitch (set expected_row_height explicitly): %w", err)
		}
		rowHeight = pitch.RowHeight
		logger.Info("row pitch probed",
			"row_height", pitch.RowHeight,
			"bands", pitch.Bands,
			"confidence", pitch.Confidence)
	}

	plan, err := geometry.Plan(desc.Width, desc.Height, geometry.Params{
		ExpectedRowHeight: rowHeight,
		RowsPerChunk:      proc.RowsPerChunk,
		OverlapRows:       proc.OverlapRows,
		ScaleLadder:       e.cfg.OCR.ScaleLadder,
		MaxWidth:          e.cfg.OCR.MaxWidth,
		MaxHeight:         e.cfg.OCR.MaxHeight,
		MaxPixels:         e.cfg.OCR.MaxPixels,
	})
	if err != nil {
		return geometry.ChunkPlan{}, nil, err
	}

	regions, err := geometry.Regions(plan, desc.Width, geometry.Ratios{
		Name:   e.cfg.Layout.NameWidthRatio,
		Points: e.cfg.Layout.PointsWidthRatio,
	})
	if err != nil {
		return geometry.ChunkPlan{}, nil, err
	}
	split := regions[1].X0

	logger.Info("chunk plan ready",
		"chunks", len(plan.Chunks),
		"row_span", plan.RowSpan,
		"overlap", plan.Overlap,
		"split_column", split,
		"estimated_rows", desc.Height/rowHeight)

	intervals := make([][2]int, len(plan.Chunks))
	for i, c := range plan.Chunks {
		intervals[i] = [2]int{c.StartRow, c.EndRow}
	}
	e.sink.SavePlanOverlay(img, intervals, split)

	return plan, regions, nil
}
