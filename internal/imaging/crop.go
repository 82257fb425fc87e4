package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion extracts a rectangular region from an image.
//
// The rectangle is expressed in the image's own coordinate space and must lie
// entirely within its bounds; partial overlap is rejected rather than clamped
// so that geometry bugs surface as errors instead of silently shifted crops.
// The returned image has its own pixel storage and zero-based bounds.
func CropRegion(img image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if rect.Min.X < bounds.Min.X || rect.Min.Y < bounds.Min.Y ||
		rect.Max.X > bounds.Max.X || rect.Max.Y > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if rect.Min.X >= rect.Max.X || rect.Min.Y >= rect.Max.Y {
		return nil, fmt.Errorf("invalid crop region: empty rectangle (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y)
	}

	return imaging.Crop(img, rect), nil
}
