package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

const (
	// Window size and mean bias for adaptive binarization, tuned for
	// roster text at native screenshot resolution.
	adaptiveBlockSize = 11
	adaptiveOffset    = 2

	// medianKernelSize is the neighborhood of the denoise pass.
	medianKernelSize = 3.0

	// sharpenSigma drives the post-upscale sharpening pass.
	sharpenSigma = 1.0
)

// ThresholdMode selects the binarization strategy applied before upscaling.
type ThresholdMode int

const (
	// ThresholdNone leaves grayscale values untouched.
	ThresholdNone ThresholdMode = iota

	// ThresholdAdaptive binarizes each pixel against its local mean,
	// which copes with the gradient backgrounds behind nickname text.
	ThresholdAdaptive

	// ThresholdOtsu binarizes against a single global level picked by
	// Otsu's method, suited to the uniform digits of the points column.
	ThresholdOtsu
)

// String returns the mode name used in logs and debug file names.
func (m ThresholdMode) String() string {
	switch m {
	case ThresholdAdaptive:
		return "adaptive"
	case ThresholdOtsu:
		return "otsu"
	default:
		return "none"
	}
}

// PrepareOptions controls the preprocessing pipeline for one cropped region.
type PrepareOptions struct {
	// Scale is the upscale factor assigned by the chunk plan.
	// Must be positive; 1 skips resampling.
	Scale float64

	// Contrast is the final contrast multiplier (1 = unchanged).
	Contrast float64

	// Denoise applies a median filter before thresholding.
	Denoise bool

	// Threshold selects the binarization strategy.
	Threshold ThresholdMode
}

// Prepare runs the preprocessing pipeline over a cropped region and returns
// the raster handed to the OCR engine.
//
// The pipeline order is fixed: grayscale, median denoise, binarization,
// Lanczos upscale, sharpen, contrast. Prepare is a pure function of its
// inputs; the same region and options always produce the same raster.
func Prepare(img image.Image, opts PrepareOptions) (*image.NRGBA, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("invalid scale factor %g: must be positive", opts.Scale)
	}
	if opts.Contrast <= 0 {
		return nil, fmt.Errorf("invalid contrast multiplier %g: must be positive", opts.Contrast)
	}

	var work image.Image = imaging.Grayscale(img)

	if opts.Denoise {
		work = effect.Median(work, medianKernelSize)
	}

	switch opts.Threshold {
	case ThresholdAdaptive:
		work = AdaptiveThreshold(work, adaptiveBlockSize, adaptiveOffset)
	case ThresholdOtsu:
		work = segment.Threshold(work, OtsuLevel(work))
	}

	if opts.Scale != 1 {
		b := work.Bounds()
		w := int(math.Round(float64(b.Dx()) * opts.Scale))
		h := int(math.Round(float64(b.Dy()) * opts.Scale))
		work = imaging.Resize(work, w, h, imaging.Lanczos)
	}

	sharpened := imaging.Sharpen(work, sharpenSigma)

	return imaging.AdjustContrast(sharpened, (opts.Contrast-1)*100), nil
}

// EncodePNG serializes an image to PNG bytes for handoff to the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
