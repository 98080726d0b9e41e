package colour

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

// separablePixels returns three tight, well separated groups of 60, 30 and
// 10 pixels whose means are (250,0,0), (0,200,0) and (0,0,100).
func separablePixels() []RGB {
	var pixels []RGB
	add := func(n int, a, b RGB) {
		for i := range n {
			if i%2 == 0 {
				pixels = append(pixels, a)
			} else {
				pixels = append(pixels, b)
			}
		}
	}
	add(60, RGB{R: 251}, RGB{R: 249})
	add(30, RGB{G: 201}, RGB{G: 199})
	add(10, RGB{B: 101}, RGB{B: 99})
	return pixels
}

func TestKMeansExtractUniformPixels(t *testing.T) {
	pixels := make([]RGB, 100)
	for i := range pixels {
		pixels[i] = RGB{R: 10, G: 20, B: 30}
	}

	palette, err := NewKMeansExtractor().Extract(pixels, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if palette.Len() != 1 {
		t.Fatalf("Expected exactly 1 cluster, got %d", palette.Len())
	}
	c := palette.Clusters[0]
	if c.Centroid != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("Centroid = %+v, want (10, 20, 30)", c.Centroid)
	}
	if c.Fraction != 1.0 {
		t.Errorf("Fraction = %v, want 1.0", c.Fraction)
	}
	if c.Count != 100 {
		t.Errorf("Count = %d, want 100", c.Count)
	}
}

func TestKMeansExtractInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		pixels []RGB
		k      int
	}{
		{name: "zero colours", pixels: []RGB{{R: 1}}, k: 0},
		{name: "negative colours", pixels: []RGB{{R: 1}}, k: -3},
		{name: "no pixels", pixels: nil, k: 5},
		{name: "empty pixels", pixels: []RGB{}, k: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette, err := NewKMeansExtractor().Extract(tt.pixels, tt.k)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Extract() error = %v, want ErrInvalidInput", err)
			}
			if palette != nil {
				t.Errorf("Extract() returned a palette alongside an error")
			}
		})
	}
}

func TestKMeansExtractClampsToDistinctColours(t *testing.T) {
	pixels := []RGB{{R: 255}, {G: 255}, {G: 255}, {B: 255}, {B: 255}, {B: 255}}

	palette, err := NewKMeansExtractor().Extract(pixels, 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 3 {
		t.Fatalf("Expected 3 clusters, got %d", palette.Len())
	}

	want := []RGB{{B: 255}, {G: 255}, {R: 255}}
	for i, c := range palette.Clusters {
		if c.Centroid != want[i] {
			t.Errorf("Clusters[%d].Centroid = %+v, want %+v", i, c.Centroid, want[i])
		}
	}
}

func TestKMeansExtractSeparableGroups(t *testing.T) {
	palette, err := NewKMeansExtractor().Extract(separablePixels(), 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 3 {
		t.Fatalf("Expected 3 clusters, got %d", palette.Len())
	}

	want := []struct {
		centroid RGB
		fraction float64
	}{
		{RGB{R: 250}, 0.6},
		{RGB{G: 200}, 0.3},
		{RGB{B: 100}, 0.1},
	}
	for i, w := range want {
		c := palette.Clusters[i]
		if c.Centroid != w.centroid {
			t.Errorf("Clusters[%d].Centroid = %+v, want %+v", i, c.Centroid, w.centroid)
		}
		if math.Abs(c.Fraction-w.fraction) > 1e-9 {
			t.Errorf("Clusters[%d].Fraction = %v, want %v", i, c.Fraction, w.fraction)
		}
	}
}

func TestKMeansExtractInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for trial := range 25 {
		n := 1 + rng.IntN(400)
		pixels := make([]RGB, n)
		for i := range pixels {
			pixels[i] = randomRGB(rng)
		}
		k := 1 + rng.IntN(12)

		palette, err := NewKMeansExtractor().Extract(pixels, k)
		if err != nil {
			t.Fatalf("trial %d: Extract() error = %v", trial, err)
		}
		assertPaletteInvariants(t, palette, k, n)
	}
}

func TestKMeansExtractDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	pixels := make([]RGB, 500)
	for i := range pixels {
		pixels[i] = randomRGB(rng)
	}

	first, err := NewKMeansExtractor().Extract(pixels, 6)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewKMeansExtractor().Extract(pixels, 6)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Extract() is not deterministic:\n%s\n%s", first, second)
	}
}

func TestKMeansIterationCap(t *testing.T) {
	palette, err := NewKMeansExtractor().WithMaxIterations(1).Extract(separablePixels(), 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertPaletteInvariants(t, palette, 2, 100)
}

func TestKMeansConvergence(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	pixels := make([]RGB, 400)
	for i := range pixels {
		pixels[i] = randomRGB(rng)
	}

	// A threshold no movement can exceed stops after the first update.
	loose, err := NewKMeansExtractor().WithConvergence(1e9).Extract(pixels, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	single, err := NewKMeansExtractor().WithMaxIterations(1).Extract(pixels, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !reflect.DeepEqual(loose, single) {
		t.Errorf("WithConvergence(1e9) = %s, want the single iteration palette %s", loose, single)
	}

	exact, err := NewKMeansExtractor().WithConvergence(0).WithMaxIterations(10000).Extract(pixels, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertPaletteInvariants(t, exact, 4, len(pixels))

	cfg := DefaultExtractorConfig()
	cfg.Convergence = 1e9
	extractor, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	viaConfig, err := extractor.Extract(pixels, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !reflect.DeepEqual(viaConfig, single) {
		t.Errorf("Convergence from config = %s, want %s", viaConfig, single)
	}
}

func TestNearestCentroidTieBreak(t *testing.T) {
	centroids := []Point{{R: 0}, {R: 10}, {R: 0}}
	if got := nearestCentroid(Point{R: 5}, centroids); got != 0 {
		t.Errorf("nearestCentroid() = %d, want 0 for equidistant centroids", got)
	}
}

func assertPaletteInvariants(t *testing.T, palette *Palette, k, total int) {
	t.Helper()

	if palette.Len() == 0 || palette.Len() > k {
		t.Fatalf("palette has %d clusters, want 1..%d", palette.Len(), k)
	}

	sum := 0.0
	count := 0
	for i, c := range palette.Clusters {
		if c.Fraction <= 0 {
			t.Errorf("Clusters[%d].Fraction = %v, want > 0", i, c.Fraction)
		}
		if i > 0 && c.Fraction > palette.Clusters[i-1].Fraction {
			t.Errorf("Clusters not sorted by descending fraction at %d", i)
		}
		sum += c.Fraction
		count += c.Count
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("fractions sum to %v, want 1.0", sum)
	}
	if count != total {
		t.Errorf("cluster counts sum to %d, want %d", count, total)
	}
}
