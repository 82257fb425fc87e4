package config

import "time"

// Config holds the full roster-ocr configuration.
// Loaded from config.yaml/config.json, environment, and compiled defaults.
type Config struct {
	Image      ImageCfg      `mapstructure:"image" yaml:"image"`
	Processing ProcessingCfg `mapstructure:"processing" yaml:"processing"`
	Layout     LayoutCfg     `mapstructure:"layout" yaml:"layout"`
	OCR        OCRCfg        `mapstructure:"ocr" yaml:"ocr"`
	Validation ValidationCfg `mapstructure:"validation" yaml:"validation"`
	Debug      DebugCfg      `mapstructure:"debug" yaml:"debug"`
	ClanSizes  []ClanSizeCfg `mapstructure:"clan_sizes" yaml:"clan_sizes"`
}

// ImageCfg names the default input image and output CSV paths.
// Both may be overridden on the command line.
type ImageCfg struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ProcessingCfg controls chunking and scheduling.
type ProcessingCfg struct {
	// ExpectedRowHeight is the pixel height of one roster row.
	// 0 means probe the image for the row pitch instead.
	ExpectedRowHeight int `mapstructure:"expected_row_height" yaml:"expected_row_height"`

	// RowsPerChunk is how many roster rows one chunk should cover.
	RowsPerChunk int `mapstructure:"rows_per_chunk" yaml:"rows_per_chunk"`

	// OverlapRows is the pixel overlap between consecutive chunks.
	OverlapRows int `mapstructure:"overlap_rows" yaml:"overlap_rows"`

	// AutoAdjust applies the clan-size presets based on image height.
	AutoAdjust bool `mapstructure:"auto_adjust" yaml:"auto_adjust"`

	// Workers is the number of chunks processed concurrently. 0 or 1
	// means sequential.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// ChunkTimeout bounds recognition of a single chunk.
	ChunkTimeout time.Duration `mapstructure:"chunk_timeout" yaml:"chunk_timeout"`
}

// LayoutCfg describes the two-column roster layout. The ratios must sum to 1.
type LayoutCfg struct {
	NameWidthRatio   float64 `mapstructure:"name_width_ratio" yaml:"name_width_ratio"`
	PointsWidthRatio float64 `mapstructure:"points_width_ratio" yaml:"points_width_ratio"`
}

// OCRCfg configures the recognition engine and the preprocessing pipeline.
type OCRCfg struct {
	Language       string `mapstructure:"language" yaml:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix"`

	// Per-side character whitelists passed to the engine.
	NameWhitelist   string `mapstructure:"name_whitelist" yaml:"name_whitelist"`
	PointsWhitelist string `mapstructure:"points_whitelist" yaml:"points_whitelist"`

	// ScaleLadder lists upscale candidates in descending order. The
	// planner picks the largest that fits the engine ceilings; retries
	// step down the ladder.
	ScaleLadder []float64 `mapstructure:"scale_ladder" yaml:"scale_ladder"`

	// Engine size ceilings for a scaled chunk region.
	MaxWidth  int `mapstructure:"max_width" yaml:"max_width"`
	MaxHeight int `mapstructure:"max_height" yaml:"max_height"`
	MaxPixels int `mapstructure:"max_pixels" yaml:"max_pixels"`

	// Contrast is the post-scale contrast multiplier (1.0 = unchanged).
	Contrast float64 `mapstructure:"contrast" yaml:"contrast"`

	// Denoise toggles the median filter step.
	Denoise bool `mapstructure:"denoise" yaml:"denoise"`
}

// ValidationCfg bounds what counts as a plausible nickname or point value.
type ValidationCfg struct {
	MinPoints         int `mapstructure:"min_points" yaml:"min_points"`
	MaxPoints         int `mapstructure:"max_points" yaml:"max_points"`
	MinNicknameLength int `mapstructure:"min_nickname_length" yaml:"min_nickname_length"`
	MaxNicknameWords  int `mapstructure:"max_nickname_words" yaml:"max_nickname_words"`
}

// DebugCfg controls the debug artifact sink.
type DebugCfg struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	SaveImages bool   `mapstructure:"save_images" yaml:"save_images"`
	SaveText   bool   `mapstructure:"save_text" yaml:"save_text"`
}

// ClanSizeCfg is one height-keyed preset applied when AutoAdjust is on.
// Presets are checked in order; MaxHeight 0 matches any height.
type ClanSizeCfg struct {
	Name         string `mapstructure:"name" yaml:"name"`
	MaxHeight    int    `mapstructure:"max_height" yaml:"max_height"`
	RowsPerChunk int    `mapstructure:"rows_per_chunk" yaml:"rows_per_chunk"`
	OverlapRows  int    `mapstructure:"overlap_rows" yaml:"overlap_rows"`
}

// DefaultConfig returns the compiled-in defaults, tuned for the game's
// roster screenshots at standard phone resolution.
func DefaultConfig() *Config {
	return &Config{
		Image: ImageCfg{
			Output: "clan_points.csv",
		},
		Processing: ProcessingCfg{
			ExpectedRowHeight: 140,
			RowsPerChunk:      12,
			OverlapRows:       20,
			AutoAdjust:        true,
			Workers:           1,
			ChunkTimeout:      90 * time.Second,
		},
		Layout: LayoutCfg{
			NameWidthRatio:   0.7,
			PointsWidthRatio: 0.3,
		},
		OCR: OCRCfg{
			Language:        "eng",
			NameWhitelist:   "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789[]{}()_- ",
			PointsWhitelist: "0123456789,points ",
			ScaleLadder:     []float64{4, 3, 2, 1.5, 1},
			MaxWidth:        32767,
			MaxHeight:       32767,
			MaxPixels:       64 << 20,
			Contrast:        1.5,
			Denoise:         true,
		},
		Validation: ValidationCfg{
			MinPoints:         1000,
			MaxPoints:         999999,
			MinNicknameLength: 3,
			MaxNicknameWords:  3,
		},
		Debug: DebugCfg{
			Enabled:    false,
			Dir:        "debug",
			SaveImages: true,
			SaveText:   true,
		},
		ClanSizes: []ClanSizeCfg{
			{Name: "small", MaxHeight: 4200, RowsPerChunk: 15, OverlapRows: 20},
			{Name: "medium", MaxHeight: 7000, RowsPerChunk: 12, OverlapRows: 20},
			{Name: "large", MaxHeight: 11200, RowsPerChunk: 10, OverlapRows: 30},
			{Name: "maximum", MaxHeight: 0, RowsPerChunk: 8, OverlapRows: 30},
		},
	}
}

// SizeForHeight returns the first clan-size preset matching the image
// height. Presets with MaxHeight 0 match any height. When every preset
// is bounded and none matches, the last one is returned.
func (c *Config) SizeForHeight(height int) (ClanSizeCfg, bool) {
	for _, p := range c.ClanSizes {
		if p.MaxHeight == 0 || height <= p.MaxHeight {
			return p, true
		}
	}
	if len(c.ClanSizes) > 0 {
		return c.ClanSizes[len(c.ClanSizes)-1], true
	}
	return ClanSizeCfg{}, false
}
