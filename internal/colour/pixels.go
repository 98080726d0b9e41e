package colour

import (
	"fmt"
	"image"
	"math"
)

// DefaultMaxSamples caps how many pixels PixelsFromImage reads.
const DefaultMaxSamples = 20000

// PixelsFromGrid flattens a height x width x 3 buffer of 8-bit samples in
// row-major order.
func PixelsFromGrid(buf []uint8, height, width int) ([]RGB, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidInput, height, width)
	}
	if len(buf) != height*width*3 {
		return nil, fmt.Errorf("%w: buffer holds %d samples, want %d for %dx%dx3",
			ErrInvalidInput, len(buf), height*width*3, height, width)
	}

	pixels := make([]RGB, 0, height*width)
	for i := 0; i < len(buf); i += 3 {
		pixels = append(pixels, RGB{R: buf[i], G: buf[i+1], B: buf[i+2]})
	}
	return pixels, nil
}

// PixelsFromFloatGrid flattens a height x width x 3 buffer of samples in
// [0, 1], as produced by tensor-based hosts. Values are scaled by 255.
func PixelsFromFloatGrid(buf []float32, height, width int) ([]RGB, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidInput, height, width)
	}
	if len(buf) != height*width*3 {
		return nil, fmt.Errorf("%w: buffer holds %d samples, want %d for %dx%dx3",
			ErrInvalidInput, len(buf), height*width*3, height, width)
	}

	pixels := make([]RGB, 0, height*width)
	for i := 0; i < len(buf); i += 3 {
		p := Point{
			R: float64(buf[i]) * 255,
			G: float64(buf[i+1]) * 255,
			B: float64(buf[i+2]) * 255,
		}
		pixels = append(pixels, p.RGB())
	}
	return pixels, nil
}

// PixelsFromImage samples pixels from a decoded image.
// Images larger than maxSamples pixels are grid sampled; fully transparent
// pixels are skipped. A maxSamples of zero or less reads every pixel.
func PixelsFromImage(img image.Image, maxSamples int) []RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if maxSamples > 0 && totalPixels > maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)
	}

	capacity := totalPixels
	if maxSamples > 0 {
		capacity = min(totalPixels, maxSamples)
	}

	pixels := make([]RGB, 0, capacity)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			pixels = append(pixels, ToRGB(c))
			if maxSamples > 0 && len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// distinctClusters counts each distinct colour, in first-seen order.
func distinctClusters(pixels []RGB) []Cluster {
	index := make(map[RGB]int)
	var clusters []Cluster
	for _, p := range pixels {
		i, ok := index[p]
		if !ok {
			i = len(clusters)
			index[p] = i
			clusters = append(clusters, Cluster{Centroid: p, Mean: p.Point()})
		}
		clusters[i].Count++
	}
	return clusters
}

// prepare validates the extractor input and clamps k to the number of
// distinct colours. When no clustering is needed it returns the exact palette.
func prepare(pixels []RGB, k int) (int, *Palette, error) {
	if len(pixels) == 0 {
		return 0, nil, fmt.Errorf("%w: pixel set is empty", ErrInvalidInput)
	}
	if k < 1 {
		return 0, nil, fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidInput, k)
	}

	distinct := distinctClusters(pixels)
	if k >= len(distinct) {
		return len(distinct), NewPalette(distinct), nil
	}
	return k, nil, nil
}
