package imaging

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const overlayLineWidth = 2

// Sink writes optional debug artifacts produced during a run: preprocessed
// region images, raw OCR text, and a chunk plan overlay. Artifacts never
// affect extraction results, so write failures are logged and swallowed.
//
// A nil *Sink is valid and discards everything, which lets callers thread a
// sink through unconditionally.
type Sink struct {
	dir        string
	saveImages bool
	saveText   bool
	logger     *slog.Logger
}

// NewSink creates the debug directory and returns a sink writing into it.
func NewSink(dir string, saveImages, saveText bool, logger *slog.Logger) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		dir:        dir,
		saveImages: saveImages,
		saveText:   saveText,
		logger:     logger,
	}, nil
}

// SaveRegion writes a preprocessed region raster as
// debug_{side}_chunk_{index}.png.
func (s *Sink) SaveRegion(img image.Image, side string, chunk int) {
	if s == nil || !s.saveImages {
		return
	}
	path := filepath.Join(s.dir, fmt.Sprintf("debug_%s_chunk_%d.png", side, chunk))
	if err := imaging.Save(img, path); err != nil {
		s.logger.Warn("failed to save debug image", "path", path, "error", err)
		return
	}
	s.logger.Debug("saved debug image", "path", path)
}

// SaveText writes raw OCR output as debug_{side}_chunk_{index}.txt.
func (s *Sink) SaveText(text, side string, chunk int) {
	if s == nil || !s.saveText {
		return
	}
	path := filepath.Join(s.dir, fmt.Sprintf("debug_%s_chunk_%d.txt", side, chunk))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		s.logger.Warn("failed to save debug text", "path", path, "error", err)
		return
	}
	s.logger.Debug("saved debug text", "path", path)
}

// SavePlanOverlay draws chunk boundaries and the column split over a copy of
// the source screenshot and writes it as debug_plan_overlay.png. Each chunk's
// [start, end) pixel interval gets its own hue so overlapping bands stay
// distinguishable; the name/points split is a white vertical line.
func (s *Sink) SavePlanOverlay(src image.Image, intervals [][2]int, split int) {
	if s == nil || !s.saveImages || len(intervals) == 0 {
		return
	}

	canvas := imaging.Clone(src)
	for i, iv := range intervals {
		hue := float64(i) * 360.0 / float64(len(intervals))
		r, g, b := colorful.Hsv(hue, 0.85, 0.9).RGB255()
		c := color.NRGBA{R: r, G: g, B: b, A: 255}
		for t := 0; t < overlayLineWidth; t++ {
			drawHLine(canvas, iv[0]+t, c)
			drawHLine(canvas, iv[1]-1-t, c)
		}
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for t := 0; t < overlayLineWidth; t++ {
		drawVLine(canvas, split+t, white)
	}

	path := filepath.Join(s.dir, "debug_plan_overlay.png")
	if err := imaging.Save(canvas, path); err != nil {
		s.logger.Warn("failed to save plan overlay", "path", path, "error", err)
		return
	}
	s.logger.Debug("saved plan overlay", "path", path)
}

func drawHLine(img *image.NRGBA, y int, c color.NRGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetNRGBA(x, y, c)
	}
}

func drawVLine(img *image.NRGBA, x int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.SetNRGBA(x, y, c)
	}
}
