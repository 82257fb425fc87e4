package extract

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ironsheep/roster-ocr/internal/geometry"
	"github.com/ironsheep/roster-ocr/internal/imaging"
	"github.com/ironsheep/roster-ocr/internal/ocr"
	"github.com/ironsheep/roster-ocr/internal/roster"
)

// processChunk crops, preprocesses, recognizes, and parses one chunk.
// Engine failures retry once at the next-lower ladder scale; a chunk
// failing both attempts contributes zero records and a diagnostic,
// never an error.
func (e *Extractor) processChunk(ctx context.Context, img image.Image, spec geometry.ChunkSpec, nameRegion, pointsRegion geometry.RegionSpec) chunkOutcome {
	started := time.Now()
	diag := ChunkDiagnostics{
		Index:    spec.Index,
		StartRow: spec.StartRow,
		EndRow:   spec.EndRow,
		Scale:    spec.Scale,
	}
	fail := func(err error) chunkOutcome {
		diag.Failure = err.Error()
		diag.Duration = time.Since(started)
		return chunkOutcome{diag: diag}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	nameImg, err := imaging.CropRegion(img, nameRegion.Rect(spec))
	if err != nil {
		return fail(fmt.Errorf("failed to crop name region: %w", err))
	}
	pointsImg, err := imaging.CropRegion(img, pointsRegion.Rect(spec))
	if err != nil {
		return fail(fmt.Errorf("failed to crop points region: %w", err))
	}

	scales := scaleAttempts(spec.Scale, e.cfg.OCR.ScaleLadder)
	attempt := -1
	var nameLines, pointsLines []ocr.Line
	err = retry.Do(
		func() error {
			attempt++
			scale := scales[min(attempt, len(scales)-1)]
			diag.Scale = scale
			diag.Attempts = attempt + 1
			var aerr error
			nameLines, pointsLines, aerr = e.recognizeAttempt(ctx, nameImg, pointsImg, spec.Index, scale)
			return aerr
		},
		retry.Context(ctx),
		retry.Attempts(uint(len(scales))),
		retry.RetryIf(ocr.IsEngineError),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			e.logger.Warn("chunk recognition failed, retrying at reduced scale",
				"chunk", spec.Index,
				"next_scale", scales[min(int(n)+1, len(scales)-1)],
				"error", err)
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return fail(err)
		}
		e.logger.Warn("chunk failed, continuing without it", "chunk", spec.Index, "error", err)
		return fail(err)
	}

	records, verrs, mismatch := roster.Parse(spec.Index, nameLines, pointsLines, e.rules())
	diag.NameLines = len(nameLines)
	diag.PointsLines = len(pointsLines)
	diag.Records = len(records)
	diag.ValidationErrors = verrs
	diag.Pairing = mismatch
	diag.Duration = time.Since(started)

	if mismatch != nil {
		e.logger.Warn("pairing mismatch", "chunk", spec.Index, "detail", mismatch.Error())
	}
	e.logger.Debug("chunk done",
		"chunk", spec.Index,
		"records", len(records),
		"rejected", len(verrs),
		"scale", diag.Scale,
		"duration", diag.Duration)

	return chunkOutcome{records: records, diag: diag}
}

// recognizeAttempt preprocesses both regions at one scale and
// recognizes them under the per-chunk timeout.
func (e *Extractor) recognizeAttempt(ctx context.Context, nameImg, pointsImg image.Image, chunk int, scale float64) ([]ocr.Line, []ocr.Line, error) {
	if timeout := e.cfg.Processing.ChunkTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	nameLines, err := e.recognizeRegion(ctx, nameImg, geometry.SideName, chunk, scale)
	if err != nil {
		return nil, nil, err
	}
	pointsLines, err := e.recognizeRegion(ctx, pointsImg, geometry.SidePoints, chunk, scale)
	if err != nil {
		return nil, nil, err
	}
	return nameLines, pointsLines, nil
}

// recognizeRegion runs the preprocessing pipeline and the engine for
// one side of a chunk. Reported rows are rescaled back to unscaled
// chunk pixels so downstream row estimates are comparable across
// attempts made at different scales.
func (e *Extractor) recognizeRegion(ctx context.Context, img image.Image, side geometry.Side, chunk int, scale float64) ([]ocr.Line, error) {
	threshold := imaging.ThresholdAdaptive
	profile := ocr.NameProfile(e.cfg.OCR.NameWhitelist)
	if side == geometry.SidePoints {
		threshold = imaging.ThresholdOtsu
		profile = ocr.PointsProfile(e.cfg.OCR.PointsWhitelist)
	}

	prepared, err := imaging.Prepare(img, imaging.PrepareOptions{
		Scale:     scale,
		Contrast:  e.cfg.OCR.Contrast,
		Denoise:   e.cfg.OCR.Denoise,
		Threshold: threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess %s region: %w", side, err)
	}
	e.sink.SaveRegion(prepared, string(side), chunk)

	data, err := imaging.EncodePNG(prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s region: %w", side, err)
	}

	lines, err := e.engine.Recognize(ctx, data, profile)
	if err != nil {
		return nil, err
	}
	e.sink.SaveText(joinLines(lines), string(side), chunk)

	for i := range lines {
		if lines[i].Row >= 0 {
			lines[i].Row = int(float64(lines[i].Row) / scale)
		}
	}
	return lines, nil
}

// rules maps the validation configuration onto the parser.
func (e *Extractor) rules() roster.Rules {
	v := e.cfg.Validation
	return roster.Rules{
		MinNicknameLength: v.MinNicknameLength,
		MaxNicknameWords:  v.MaxNicknameWords,
		MinPoints:         v.MinPoints,
		MaxPoints:         v.MaxPoints,
	}
}

// scaleAttempts returns the scales to try for a chunk: the planned
// scale, then the next lower ladder entry for the single retry. A plan
// already at the bottom of the ladder retries at the same scale.
func scaleAttempts(planned float64, ladder []float64) []float64 {
	for i, s := range ladder {
		if s == planned && i+1 < len(ladder) {
			return []float64{planned, ladder[i+1]}
		}
	}
	return []float64{planned, planned}
}

func joinLines(lines []ocr.Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Text)
	}
	return b.String()
}
