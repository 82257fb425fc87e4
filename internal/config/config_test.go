package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Processing.ExpectedRowHeight != 140 {
		t.Errorf("expected_row_height: got %d, want 140", cfg.Processing.ExpectedRowHeight)
	}
	if cfg.Processing.RowsPerChunk != 12 {
		t.Errorf("rows_per_chunk: got %d, want 12", cfg.Processing.RowsPerChunk)
	}
	if cfg.Layout.NameWidthRatio != 0.7 || cfg.Layout.PointsWidthRatio != 0.3 {
		t.Errorf("ratios: got %v/%v, want 0.7/0.3",
			cfg.Layout.NameWidthRatio, cfg.Layout.PointsWidthRatio)
	}
	if cfg.Validation.MinPoints != 1000 || cfg.Validation.MaxPoints != 999999 {
		t.Errorf("points range: got [%d, %d], want [1000, 999999]",
			cfg.Validation.MinPoints, cfg.Validation.MaxPoints)
	}
	if len(cfg.OCR.ScaleLadder) == 0 || cfg.OCR.ScaleLadder[0] != 4 {
		t.Errorf("scale ladder: got %v, want descending ladder starting at 4", cfg.OCR.ScaleLadder)
	}
	if len(cfg.ClanSizes) != 4 {
		t.Fatalf("clan size presets: got %d, want 4", len(cfg.ClanSizes))
	}
	if cfg.ClanSizes[3].MaxHeight != 0 {
		t.Error("last clan size preset should be unbounded (max_height 0)")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
processing:
  rows_per_chunk: 9
  chunk_timeout: 45s
ocr:
  scale_ladder: [2, 1.5, 1]
validation:
  min_nickname_length: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Processing.RowsPerChunk != 9 {
		t.Errorf("rows_per_chunk: got %d, want 9", cfg.Processing.RowsPerChunk)
	}
	if cfg.Processing.ChunkTimeout != 45*time.Second {
		t.Errorf("chunk_timeout: got %v, want 45s", cfg.Processing.ChunkTimeout)
	}
	if len(cfg.OCR.ScaleLadder) != 3 || cfg.OCR.ScaleLadder[0] != 2 {
		t.Errorf("scale_ladder: got %v, want [2 1.5 1]", cfg.OCR.ScaleLadder)
	}
	if cfg.Validation.MinNicknameLength != 2 {
		t.Errorf("min_nickname_length: got %d, want 2", cfg.Validation.MinNicknameLength)
	}

	// Untouched keys keep their defaults.
	if cfg.Processing.ExpectedRowHeight != 140 {
		t.Errorf("expected_row_height default lost: got %d", cfg.Processing.ExpectedRowHeight)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("language default lost: got %q", cfg.OCR.Language)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
  "processing": {"overlap_rows": 35},
  "layout": {"name_width_ratio": 0.65, "points_width_ratio": 0.35}
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Processing.OverlapRows != 35 {
		t.Errorf("overlap_rows: got %d, want 35", cfg.Processing.OverlapRows)
	}
	if cfg.Layout.NameWidthRatio != 0.65 {
		t.Errorf("name_width_ratio: got %v, want 0.65", cfg.Layout.NameWidthRatio)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load should fail when an explicit config file is missing")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ROSTER_PROCESSING_ROWS_PER_CHUNK", "7")
	t.Setenv("ROSTER_OCR_LANGUAGE", "deu")

	path := writeTempConfig(t, "config.yaml", "debug:\n  enabled: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Processing.RowsPerChunk != 7 {
		t.Errorf("env override rows_per_chunk: got %d, want 7", cfg.Processing.RowsPerChunk)
	}
	if cfg.OCR.Language != "deu" {
		t.Errorf("env override language: got %q, want deu", cfg.OCR.Language)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "overlap not below chunk span",
			mutate:    func(c *Config) { c.Processing.OverlapRows = 12 * 140 },
			wantField: "processing.overlap_rows",
		},
		{
			name:      "zero rows per chunk",
			mutate:    func(c *Config) { c.Processing.RowsPerChunk = 0 },
			wantField: "processing.rows_per_chunk",
		},
		{
			name:      "ratios not summing to one",
			mutate:    func(c *Config) { c.Layout.PointsWidthRatio = 0.4 },
			wantField: "layout",
		},
		{
			name:      "empty scale ladder",
			mutate:    func(c *Config) { c.OCR.ScaleLadder = nil },
			wantField: "ocr.scale_ladder",
		},
		{
			name:      "ascending scale ladder",
			mutate:    func(c *Config) { c.OCR.ScaleLadder = []float64{1, 2, 3} },
			wantField: "ocr.scale_ladder",
		},
		{
			name:      "negative scale",
			mutate:    func(c *Config) { c.OCR.ScaleLadder = []float64{2, -1} },
			wantField: "ocr.scale_ladder",
		},
		{
			name:      "points range inverted",
			mutate:    func(c *Config) { c.Validation.MaxPoints = 10 },
			wantField: "validation.max_points",
		},
		{
			name:      "zero pixel ceiling",
			mutate:    func(c *Config) { c.OCR.MaxPixels = 0 },
			wantField: "ocr.max_pixels",
		},
		{
			name:      "debug enabled without dir",
			mutate:    func(c *Config) { c.Debug.Enabled = true; c.Debug.Dir = "" },
			wantField: "debug.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should have failed")
			}

			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("error type: got %T, want *config.Error", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	// Writing again without force must refuse.
	if err := WriteDefault(path, false); err == nil {
		t.Error("WriteDefault should refuse to overwrite without force")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("WriteDefault with force failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written defaults failed: %v", err)
	}
	want := DefaultConfig()
	if cfg.Processing.RowsPerChunk != want.Processing.RowsPerChunk {
		t.Errorf("roundtrip rows_per_chunk: got %d, want %d",
			cfg.Processing.RowsPerChunk, want.Processing.RowsPerChunk)
	}
	if cfg.OCR.NameWhitelist != want.OCR.NameWhitelist {
		t.Errorf("roundtrip name_whitelist: got %q, want %q",
			cfg.OCR.NameWhitelist, want.OCR.NameWhitelist)
	}
}

func TestSizeForHeight(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		height   int
		wantName string
		wantRows int
	}{
		{3000, "small", 15},
		{4200, "small", 15},
		{5000, "medium", 12},
		{10000, "large", 10},
		{20000, "maximum", 8},
	}

	for _, tt := range tests {
		preset, ok := cfg.SizeForHeight(tt.height)
		if !ok {
			t.Fatalf("SizeForHeight(%d) found no preset", tt.height)
		}
		if preset.Name != tt.wantName {
			t.Errorf("SizeForHeight(%d): got %q, want %q", tt.height, preset.Name, tt.wantName)
		}
		if preset.RowsPerChunk != tt.wantRows {
			t.Errorf("SizeForHeight(%d) rows: got %d, want %d", tt.height, preset.RowsPerChunk, tt.wantRows)
		}
	}

	empty := &Config{}
	if _, ok := empty.SizeForHeight(5000); ok {
		t.Error("SizeForHeight with no presets should report not found")
	}
}
