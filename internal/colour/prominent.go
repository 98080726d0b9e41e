package colour

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/EdlinOrg/prominentcolor"
)

// ProminentExtractor delegates clustering to prominentcolor.
// The library seeds itself from the clock and may merge distinct colours on
// small inputs, so palettes can differ between runs and hold fewer than k
// colours.
type ProminentExtractor struct {
	arguments int
}

// NewProminentExtractor creates a ProminentExtractor that uses the whole
// image (no centre crop) and mean centroids.
func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{
		arguments: prominentcolor.ArgumentNoCropping | prominentcolor.ArgumentAverageMean,
	}
}

// Extract implements Extractor.
func (e *ProminentExtractor) Extract(pixels []RGB, k int) (*Palette, error) {
	k, exact, err := prepare(pixels, k)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return exact, nil
	}

	img := pixelsToImage(pixels)
	items, err := prominentcolor.KmeansWithAll(k, img, e.arguments, uint(img.Bounds().Dx()), []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("prominentcolor clustering failed: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("prominentcolor returned no colours")
	}

	centroids := make([]Point, len(items))
	for i, item := range items {
		c := RGB{R: uint8(min(item.Color.R, 255)), G: uint8(min(item.Color.G, 255)), B: uint8(min(item.Color.B, 255))}
		centroids[i] = c.Point()
	}

	// The library resamples the image, so its counts are not pixel counts.
	// Weigh each centroid by the input pixels nearest to it instead.
	counts := make([]int, len(centroids))
	for _, p := range pixels {
		counts[nearestCentroid(p.Point(), centroids)]++
	}

	clusters := make([]Cluster, len(centroids))
	for i, c := range centroids {
		clusters[i] = Cluster{Centroid: c.RGB(), Mean: c, Count: counts[i]}
	}
	return NewPalette(clusters), nil
}

// pixelsToImage lays the pixels out row by row in the smallest square that
// holds them. The unused tail stays fully transparent, which prominentcolor
// skips.
func pixelsToImage(pixels []RGB) *image.RGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(pixels)))))
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i, p := range pixels {
		img.Set(i%side, i/side, RGBToColor(p))
	}
	return img
}
