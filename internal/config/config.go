// Package config loads, validates, and writes roster-ocr configuration.
//
// Precedence, highest first: command-line overrides applied by the caller,
// ROSTER_-prefixed environment variables, a config file (config.yaml or
// config.json in the working directory or ~/.roster-ocr, or an explicit
// path), then compiled defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from defaults, an optional config file, and the
// environment. cfgFile may be empty, in which case the standard search
// paths are tried and a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.roster-ocr")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every leaf key so that environment overrides and
// partial config files merge against the compiled defaults.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("image.input", d.Image.Input)
	v.SetDefault("image.output", d.Image.Output)

	v.SetDefault("processing.expected_row_height", d.Processing.ExpectedRowHeight)
	v.SetDefault("processing.rows_per_chunk", d.Processing.RowsPerChunk)
	v.SetDefault("processing.overlap_rows", d.Processing.OverlapRows)
	v.SetDefault("processing.auto_adjust", d.Processing.AutoAdjust)
	v.SetDefault("processing.workers", d.Processing.Workers)
	v.SetDefault("processing.chunk_timeout", d.Processing.ChunkTimeout)

	v.SetDefault("layout.name_width_ratio", d.Layout.NameWidthRatio)
	v.SetDefault("layout.points_width_ratio", d.Layout.PointsWidthRatio)

	v.SetDefault("ocr.language", d.OCR.Language)
	v.SetDefault("ocr.tessdata_prefix", d.OCR.TessdataPrefix)
	v.SetDefault("ocr.name_whitelist", d.OCR.NameWhitelist)
	v.SetDefault("ocr.points_whitelist", d.OCR.PointsWhitelist)
	v.SetDefault("ocr.scale_ladder", d.OCR.ScaleLadder)
	v.SetDefault("ocr.max_width", d.OCR.MaxWidth)
	v.SetDefault("ocr.max_height", d.OCR.MaxHeight)
	v.SetDefault("ocr.max_pixels", d.OCR.MaxPixels)
	v.SetDefault("ocr.contrast", d.OCR.Contrast)
	v.SetDefault("ocr.denoise", d.OCR.Denoise)

	v.SetDefault("validation.min_points", d.Validation.MinPoints)
	v.SetDefault("validation.max_points", d.Validation.MaxPoints)
	v.SetDefault("validation.min_nickname_length", d.Validation.MinNicknameLength)
	v.SetDefault("validation.max_nickname_words", d.Validation.MaxNicknameWords)

	v.SetDefault("debug.enabled", d.Debug.Enabled)
	v.SetDefault("debug.dir", d.Debug.Dir)
	v.SetDefault("debug.save_images", d.Debug.SaveImages)
	v.SetDefault("debug.save_text", d.Debug.SaveText)

	v.SetDefault("clan_sizes", d.ClanSizes)
}

// WriteDefault writes the default configuration to path as YAML. An
// existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := "# roster-ocr configuration\n# Values omitted here fall back to compiled defaults.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
