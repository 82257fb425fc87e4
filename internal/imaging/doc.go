// Package imaging loads roster screenshots and prepares chunk regions for
// recognition.
//
// This package implements the deterministic preprocessing pipeline applied
// to every cropped chunk region (grayscale, denoise, threshold, scale,
// sharpen, contrast), the image loader with its format registrations, and
// the opt-in debug artifact sink. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Supported Input Formats
//
// Load decodes PNG, JPEG, and GIF through the standard library and BMP,
// TIFF, and WebP through golang.org/x/image. Format detection is based on
// the file contents, not the extension.
//
// # Preprocessing Pipeline
//
// Prepare is a pure function of its inputs: the same region and options
// always produce the same raster. The pipeline runs in a fixed order:
//
//  1. grayscale conversion
//  2. median denoise (optional)
//  3. binarization: adaptive mean threshold for the name column, global
//     Otsu for the points column, or none
//  4. Lanczos upscale by the chunk's planned scale factor
//  5. sharpen
//  6. contrast boost
//
// # Thread Safety
//
// All preprocessing functions are stateless and safe to call concurrently
// on different images. The debug Sink relies on per-chunk file names to
// avoid collisions; a nil *Sink is a no-op sink.
package imaging
