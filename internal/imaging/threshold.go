package imaging

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/histogram"
)

// AdaptiveThreshold binarizes an image against the mean of the square
// neighborhood around each pixel: a pixel becomes white when its value
// exceeds the local mean minus offset, black otherwise.
//
// The block parameter is the neighborhood edge length in pixels (minimum 3);
// windows are clipped at the image edges. A summed-area table keeps the cost
// independent of block size.
func AdaptiveThreshold(src image.Image, block, offset int) *image.Gray {
	gray := toGray(src)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}
	if block < 3 {
		block = 3
	}

	// sat[(y+1)*(w+1)+(x+1)] holds the sum of all pixels in [0,x]x[0,y];
	// the padding row and column keep window sums branch-free.
	sat := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum uint64
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x, v := range row {
			rowSum += uint64(v)
			sat[(y+1)*(w+1)+x+1] = sat[y*(w+1)+x+1] + rowSum
		}
	}

	radius := block / 2
	for y := 0; y < h; y++ {
		y0 := max(y-radius, 0)
		y1 := min(y+radius+1, h)
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius+1, w)

			sum := sat[y1*(w+1)+x1] - sat[y0*(w+1)+x1] - sat[y1*(w+1)+x0] + sat[y0*(w+1)+x0]
			mean := int(sum / uint64((y1-y0)*(x1-x0)))

			var v uint8
			if int(gray.Pix[y*gray.Stride+x])+offset > mean {
				v = 255
			}
			out.Pix[y*out.Stride+x] = v
		}
	}
	return out
}

// OtsuLevel picks the global binarization level that maximizes the
// between-class variance of the luminance histogram (Otsu's method).
//
// The returned value is the smallest luminance that counts as foreground,
// matching segment.Threshold's at-or-above-is-white convention.
func OtsuLevel(src image.Image) uint8 {
	// After grayscale conversion all channels are equal, so the red
	// channel histogram is the luminance histogram.
	bins := histogram.NewRGBAHistogram(src).R.Bins

	total := 0
	sumAll := 0.0
	for i, c := range bins {
		total += c
		sumAll += float64(i * c)
	}
	if total == 0 {
		return 0
	}

	var (
		wB, sumB  float64
		best      float64
		bestLevel int
	)
	for i, c := range bins {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * c)

		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			bestLevel = i
		}
	}
	return uint8(min(bestLevel+1, 255))
}

// toGray copies an image into a zero-based grayscale raster. Images that are
// already *image.Gray with zero origin are returned as-is.
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok && g.Rect.Min.X == 0 && g.Rect.Min.Y == 0 {
		return g
	}
	b := src.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), src, b.Min, draw.Src)
	return g
}
