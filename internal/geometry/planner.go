// Package geometry plans how a tall roster screenshot is cut into
// OCR-sized chunks and how each chunk splits into the name and points
// columns. Planning is pure arithmetic over the image dimensions; no
// pixels are touched.
package geometry

import (
	"fmt"
	"math"
)

// Params bounds the chunk plan. Scale candidates are tried in the given
// (descending) order; the ceilings describe what the OCR engine will
// accept after scaling.
type Params struct {
	ExpectedRowHeight int
	RowsPerChunk      int
	OverlapRows       int
	ScaleLadder       []float64
	MaxWidth          int
	MaxHeight         int
	MaxPixels         int
}

// ChunkSpec is one planned horizontal slice of the full image.
// Rows [StartRow, EndRow) are processed together at the given scale.
type ChunkSpec struct {
	Index    int
	StartRow int
	EndRow   int
	Scale    float64
}

// Rows returns the chunk height in pixels.
func (s ChunkSpec) Rows() int { return s.EndRow - s.StartRow }

// ChunkPlan is the ordered set of chunks covering the full image height.
// Consecutive chunks overlap by exactly Overlap rows so that a roster row
// cut by one boundary is read whole in the neighboring chunk.
type ChunkPlan struct {
	Chunks  []ChunkSpec
	RowSpan int
	Overlap int
}

// Plan computes the chunk plan for an image of the given dimensions.
//
// The nominal chunk span is RowsPerChunk × ExpectedRowHeight. When even
// the smallest ladder scale cannot bring a span of that height under the
// engine ceilings, the span is halved until it fits; a span that shrinks
// to the overlap size or below cannot advance and is a configuration
// error. Every chunk then gets the largest ladder scale whose scaled
// width, height, and pixel count all satisfy the ceilings.
func Plan(width, height int, p Params) (ChunkPlan, error) {
	if width <= 0 || height <= 0 {
		return ChunkPlan{}, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	if p.ExpectedRowHeight <= 0 {
		return ChunkPlan{}, fmt.Errorf("expected row height must be positive, got %d", p.ExpectedRowHeight)
	}
	if p.RowsPerChunk <= 0 {
		return ChunkPlan{}, fmt.Errorf("rows per chunk must be positive, got %d", p.RowsPerChunk)
	}
	if p.OverlapRows < 0 {
		return ChunkPlan{}, fmt.Errorf("overlap rows must not be negative, got %d", p.OverlapRows)
	}
	if len(p.ScaleLadder) == 0 {
		return ChunkPlan{}, fmt.Errorf("scale ladder is empty")
	}

	span := p.RowsPerChunk * p.ExpectedRowHeight
	if span > height {
		span = height
	}

	// Subdivide until the span fits the ceilings at the smallest scale.
	minScale := p.ScaleLadder[len(p.ScaleLadder)-1]
	for !fitsAt(width, span, minScale, p) {
		span /= 2
		if span <= p.OverlapRows || span <= 0 {
			return ChunkPlan{}, fmt.Errorf(
				"engine ceilings force the chunk span down to %d rows, not above the %d overlap rows; chunks cannot advance",
				span, p.OverlapRows)
		}
	}
	if span <= p.OverlapRows && span < height {
		return ChunkPlan{}, fmt.Errorf(
			"overlap of %d rows is not below the %d-row chunk span; chunks cannot advance",
			p.OverlapRows, span)
	}

	var chunks []ChunkSpec
	start := 0
	for index := 0; ; index++ {
		end := start + span
		if end > height {
			end = height
		}

		scale, ok := pickScale(width, end-start, p)
		if !ok {
			// Unreachable once the span fits at minScale: a clamped
			// final chunk is never taller than the span.
			return ChunkPlan{}, fmt.Errorf("chunk %d (%d rows) fits no ladder scale", index, end-start)
		}

		chunks = append(chunks, ChunkSpec{
			Index:    index,
			StartRow: start,
			EndRow:   end,
			Scale:    scale,
		})

		if end >= height {
			break
		}
		start = end - p.OverlapRows
	}

	return ChunkPlan{Chunks: chunks, RowSpan: span, Overlap: p.OverlapRows}, nil
}

// pickScale returns the largest ladder scale whose scaled dimensions and
// pixel count satisfy the ceilings.
func pickScale(width, rows int, p Params) (float64, bool) {
	for _, s := range p.ScaleLadder {
		if fitsAt(width, rows, s, p) {
			return s, true
		}
	}
	return 0, false
}

func fitsAt(width, rows int, scale float64, p Params) bool {
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(rows) * scale))
	return w <= p.MaxWidth && h <= p.MaxHeight && w*h <= p.MaxPixels
}
