package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Descriptor contains metadata about a loaded screenshot.
//
// It is derived once from the decoded raster and the file on disk, and is
// immutable afterwards. The extractor embeds it in the run result so reports
// can state what was processed without keeping the raster alive.
type Descriptor struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded format name as registered with the image
	// package: "png", "jpeg", "gif", "bmp", "tiff", or "webp".
	// Detection is based on file contents, not the extension.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load reads and decodes a roster screenshot from disk.
//
// Returns the decoded image, a Descriptor with its metadata, and an error if
// the file cannot be opened or is not in a supported format. The concrete
// image type depends on the source format and color model (e.g. *image.RGBA,
// *image.NRGBA, *image.YCbCr).
//
// A roster run reads exactly one screenshot, so Load performs no caching;
// callers hold the returned image for the lifetime of the run.
func Load(path string) (image.Image, Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Descriptor{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, Descriptor{}, fmt.Errorf("failed to decode image: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, Descriptor{}, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	desc := Descriptor{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		desc.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		desc.HasAlpha = true
		desc.ColorDepth = "16-bit"
	case *image.Gray16:
		desc.ColorDepth = "16-bit"
	}

	return img, desc, nil
}

// Peek reads a screenshot's dimensions and format from its header without
// decoding pixel data. Used to print image info and the processing-time
// estimate before committing to a full run.
func Peek(path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to stat file: %w", err)
	}

	desc := Descriptor{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel:
		desc.HasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model:
		desc.HasAlpha = true
		desc.ColorDepth = "16-bit"
	case color.Gray16Model:
		desc.ColorDepth = "16-bit"
	}
	return desc, nil
}
