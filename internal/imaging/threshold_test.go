package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createGradientGlyphImage builds a grayscale image with a smooth horizontal
// background gradient and dark square glyphs near both ends, mimicking roster
// text on an uneven backdrop.
func createGradientGlyphImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 80 + uint8(x*120/width)
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	for _, cx := range []int{width / 8, width * 7 / 8} {
		for y := height/2 - 3; y < height/2+3; y++ {
			for x := cx - 3; x < cx+3; x++ {
				img.SetGray(x, y, color.Gray{Y: 20})
			}
		}
	}
	return img
}

func TestAdaptiveThreshold_ProducesBinaryOutput(t *testing.T) {
	img := createGradientGlyphImage(120, 40)

	out := AdaptiveThreshold(img, 11, 2)

	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d: got %d, want 0 or 255", i, v)
		}
	}
}

func TestAdaptiveThreshold_SeparatesGlyphsFromGradient(t *testing.T) {
	img := createGradientGlyphImage(120, 40)

	out := AdaptiveThreshold(img, 11, 2)

	// Glyph centers at both ends of the gradient come out black.
	for _, cx := range []int{120 / 8, 120 * 7 / 8} {
		if got := out.GrayAt(cx, 20).Y; got != 0 {
			t.Errorf("glyph at x=%d: got %d, want 0", cx, got)
		}
	}
	// Background away from the glyphs comes out white at both ends, even
	// though the darker left background is below any single global level
	// that keeps the right background white.
	for _, x := range []int{60, 115} {
		if got := out.GrayAt(x, 5).Y; got != 255 {
			t.Errorf("background at x=%d: got %d, want 255", x, got)
		}
	}
}

func TestAdaptiveThreshold_UniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := range img.Pix {
		img.Pix[i] = 140
	}

	out := AdaptiveThreshold(img, 11, 2)

	// Every pixel sits exactly at its local mean, so the positive offset
	// tips everything to white.
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d: got %d, want 255", i, v)
		}
	}
}

func TestAdaptiveThreshold_NonGrayInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{200, 200, 200, 255})
		}
	}

	out := AdaptiveThreshold(img, 11, 2)

	b := out.Bounds()
	if b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 20x20", b.Dx(), b.Dy())
	}
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := uint8(40)
			if x >= 20 {
				v = 200
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	level := OtsuLevel(img)
	if level <= 40 || level > 200 {
		t.Errorf("level: got %d, want in (40, 200]", level)
	}
}

func TestOtsuLevel_SeparatesDigitsFromBackground(t *testing.T) {
	// Dark digits (30) on a light panel (220) with a sprinkle of mid
	// values; the level must split the two modes.
	img := image.NewGray(image.Rect(0, 0, 60, 20))
	for i := range img.Pix {
		img.Pix[i] = 220
	}
	for y := 5; y < 15; y++ {
		for x := 10; x < 50; x += 5 {
			img.SetGray(x, y, color.Gray{Y: 30})
		}
	}

	level := OtsuLevel(img)
	if level <= 30 {
		t.Errorf("level %d does not separate digit value 30 from background", level)
	}
	if level > 220 {
		t.Errorf("level %d classifies the background as ink", level)
	}
}

func TestOtsuLevel_UniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 100
	}

	// With no second mode the level collapses to the bottom of the range
	// and the whole image counts as foreground.
	if level := OtsuLevel(img); level > 100 {
		t.Errorf("level: got %d, want <= 100", level)
	}
}
