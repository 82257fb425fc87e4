package config

import (
	"fmt"
	"math"
)

// Error reports an invalid configuration value. Runs abort on it before
// any chunk processing starts.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for values that would make a run
// impossible or never terminate. It returns the first problem found.
func (c *Config) Validate() error {
	p := c.Processing
	if p.ExpectedRowHeight < 0 {
		return &Error{"processing.expected_row_height", "must be 0 (auto) or positive"}
	}
	if p.RowsPerChunk <= 0 {
		return &Error{"processing.rows_per_chunk", "must be positive"}
	}
	if p.OverlapRows < 0 {
		return &Error{"processing.overlap_rows", "must not be negative"}
	}
	if p.ExpectedRowHeight > 0 && p.OverlapRows >= p.RowsPerChunk*p.ExpectedRowHeight {
		return &Error{"processing.overlap_rows", "must be smaller than the chunk row span, or chunks never advance"}
	}
	if p.Workers < 0 {
		return &Error{"processing.workers", "must not be negative"}
	}
	if p.ChunkTimeout < 0 {
		return &Error{"processing.chunk_timeout", "must not be negative"}
	}

	l := c.Layout
	if l.NameWidthRatio <= 0 || l.NameWidthRatio >= 1 {
		return &Error{"layout.name_width_ratio", "must be between 0 and 1 exclusive"}
	}
	if l.PointsWidthRatio <= 0 || l.PointsWidthRatio >= 1 {
		return &Error{"layout.points_width_ratio", "must be between 0 and 1 exclusive"}
	}
	if math.Abs(l.NameWidthRatio+l.PointsWidthRatio-1) > 1e-6 {
		return &Error{"layout", "name_width_ratio and points_width_ratio must sum to 1"}
	}

	o := c.OCR
	if o.Language == "" {
		return &Error{"ocr.language", "must not be empty"}
	}
	if len(o.ScaleLadder) == 0 {
		return &Error{"ocr.scale_ladder", "must list at least one scale"}
	}
	for i, s := range o.ScaleLadder {
		if s <= 0 {
			return &Error{"ocr.scale_ladder", "scales must be positive"}
		}
		if i > 0 && s >= o.ScaleLadder[i-1] {
			return &Error{"ocr.scale_ladder", "scales must be strictly descending"}
		}
	}
	if o.MaxWidth <= 0 {
		return &Error{"ocr.max_width", "must be positive"}
	}
	if o.MaxHeight <= 0 {
		return &Error{"ocr.max_height", "must be positive"}
	}
	if o.MaxPixels <= 0 {
		return &Error{"ocr.max_pixels", "must be positive"}
	}
	if o.Contrast <= 0 {
		return &Error{"ocr.contrast", "must be positive"}
	}

	val := c.Validation
	if val.MinPoints < 0 {
		return &Error{"validation.min_points", "must not be negative"}
	}
	if val.MaxPoints < val.MinPoints {
		return &Error{"validation.max_points", "must not be below min_points"}
	}
	if val.MinNicknameLength < 1 {
		return &Error{"validation.min_nickname_length", "must be at least 1"}
	}
	if val.MaxNicknameWords < 1 {
		return &Error{"validation.max_nickname_words", "must be at least 1"}
	}

	if c.Debug.Enabled && c.Debug.Dir == "" {
		return &Error{"debug.dir", "must be set when debug output is enabled"}
	}

	for i, preset := range c.ClanSizes {
		if preset.RowsPerChunk <= 0 {
			return &Error{fmt.Sprintf("clan_sizes[%d].rows_per_chunk", i), "must be positive"}
		}
		if preset.OverlapRows < 0 {
			return &Error{fmt.Sprintf("clan_sizes[%d].overlap_rows", i), "must not be negative"}
		}
	}

	return nil
}
