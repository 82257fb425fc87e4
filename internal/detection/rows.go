package detection

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/ironsheep/roster-ocr/internal/imaging"
)

const (
	// minInkDensity is the fraction of a row's pixels that must be ink
	// before the row counts as part of a text band.
	minInkDensity = 0.02

	// minBandHeight drops bands thinner than any plausible glyph.
	minBandHeight = 2

	// mergeGap keeps gaps shorter than this from splitting a band, which
	// stitches accents and descenders back onto their line.
	mergeGap = 2

	// minBands is the smallest number of text bands that gives a usable
	// pitch estimate.
	minBands = 3

	// gapTolerance is the relative deviation from the median gap still
	// counted as consistent when scoring confidence.
	gapTolerance = 0.2
)

// Pitch describes the estimated vertical rhythm of a roster screenshot.
type Pitch struct {
	// RowHeight is the median distance in pixels between the tops of
	// consecutive text bands.
	RowHeight int `json:"row_height"`

	// Bands is the number of text bands found in the ink profile.
	Bands int `json:"bands"`

	// Confidence is the fraction of band gaps within gapTolerance of the
	// median (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// EstimateRowPitch measures the vertical distance between roster rows from
// the image's horizontal ink-density profile.
//
// The image is binarized at a global Otsu level with text taken to be the
// minority class, so light-on-dark game panels and dark-on-light exports
// both work. Rows whose ink density reaches minInkDensity are grouped into
// bands, and the median gap between consecutive band starts is the pitch.
//
// Returns an error when fewer than minBands bands are found, which is too
// little signal to call a rhythm.
func EstimateRowPitch(img image.Image) (Pitch, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return Pitch{}, fmt.Errorf("cannot probe an empty image")
	}

	level := imaging.OtsuLevel(img)

	// Per-row counts of pixels at or above the split, plus the global
	// count to decide which side of the split is text.
	above := make([]int, height)
	totalAbove := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if c.Y >= level {
				above[y]++
			}
		}
		totalAbove += above[y]
	}

	// Text is the minority class.
	invert := totalAbove*2 > width*height

	minInk := int(math.Ceil(minInkDensity * float64(width)))
	inked := make([]bool, height)
	for y, n := range above {
		ink := n
		if invert {
			ink = width - n
		}
		inked[y] = ink >= minInk
	}

	starts := bandStarts(inked)
	if len(starts) < minBands {
		return Pitch{}, fmt.Errorf("found %d text bands, need at least %d to estimate row pitch",
			len(starts), minBands)
	}

	gaps := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		gaps = append(gaps, starts[i]-starts[i-1])
	}
	sort.Ints(gaps)
	median := gaps[len(gaps)/2]

	within := 0
	for _, g := range gaps {
		if math.Abs(float64(g-median)) <= gapTolerance*float64(median) {
			within++
		}
	}
	confidence := math.Round(float64(within)/float64(len(gaps))*1000) / 1000

	return Pitch{
		RowHeight:  median,
		Bands:      len(starts),
		Confidence: confidence,
	}, nil
}

// bandStarts segments the inked-row mask into text bands and returns each
// band's starting row. Gaps shorter than mergeGap do not break a band, and
// bands thinner than minBandHeight are dropped as noise.
func bandStarts(inked []bool) []int {
	starts := make([]int, 0)

	inBand := false
	bandStart := 0
	bandEnd := 0 // exclusive
	gap := 0

	flush := func() {
		if inBand && bandEnd-bandStart >= minBandHeight {
			starts = append(starts, bandStart)
		}
		inBand = false
	}

	for y, ink := range inked {
		switch {
		case ink && !inBand:
			inBand = true
			bandStart = y
			bandEnd = y + 1
			gap = 0
		case ink:
			bandEnd = y + 1
			gap = 0
		case inBand:
			gap++
			if gap >= mergeGap {
				flush()
			}
		}
	}
	flush()

	return starts
}
