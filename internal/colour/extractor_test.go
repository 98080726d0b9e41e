package colour

import (
	"errors"
	"testing"
)

func TestIterationsForAccuracy(t *testing.T) {
	tests := []struct {
		accuracy int
		want     int
	}{
		{accuracy: 100, want: 512},
		{accuracy: 60, want: 307},
		{accuracy: 1, want: 5},
		{accuracy: 0, want: 1},
	}

	for _, tt := range tests {
		if got := IterationsForAccuracy(tt.accuracy); got != tt.want {
			t.Errorf("IterationsForAccuracy(%d) = %d, want %d", tt.accuracy, got, tt.want)
		}
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ExtractorConfig)
		wantErr bool
	}{
		{name: "defaults", modify: func(*ExtractorConfig) {}},
		{name: "prominent", modify: func(c *ExtractorConfig) { c.Algorithm = AlgorithmProminent }},
		{name: "clusters", modify: func(c *ExtractorConfig) { c.Algorithm = AlgorithmClusters }},
		{name: "unknown algorithm", modify: func(c *ExtractorConfig) { c.Algorithm = "mediancut" }, wantErr: true},
		{name: "zero colours", modify: func(c *ExtractorConfig) { c.ColorCount = 0 }, wantErr: true},
		{name: "many colours", modify: func(c *ExtractorConfig) { c.ColorCount = 10000 }},
		{name: "zero convergence", modify: func(c *ExtractorConfig) { c.Convergence = 0 }},
		{name: "negative convergence", modify: func(c *ExtractorConfig) { c.Convergence = -0.1 }, wantErr: true},
		{name: "accuracy too low", modify: func(c *ExtractorConfig) { c.Accuracy = 0 }, wantErr: true},
		{name: "accuracy too high", modify: func(c *ExtractorConfig) { c.Accuracy = 101 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNewExtractor(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			cfg.Algorithm = alg

			extractor, err := NewExtractor(cfg)
			if err != nil {
				t.Fatalf("NewExtractor() error = %v", err)
			}

			palette, err := extractor.Extract(separablePixels(), 3)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			assertPaletteInvariants(t, palette, 3, len(separablePixels()))

			if _, err := extractor.Extract(nil, 3); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Extract(nil) error = %v, want ErrInvalidInput", err)
			}

			uniform := []RGB{{R: 7}, {R: 7}, {R: 7}}
			palette, err = extractor.Extract(uniform, 4)
			if err != nil {
				t.Fatalf("Extract(uniform) error = %v", err)
			}
			if palette.Len() != 1 || palette.Clusters[0].Centroid != (RGB{R: 7}) {
				t.Errorf("Extract(uniform) = %s, want a single (7, 0, 0) cluster", palette)
			}
		})
	}
}

func TestNewExtractorInvalid(t *testing.T) {
	cfg := DefaultExtractorConfig()
	cfg.Algorithm = "dominant"
	if _, err := NewExtractor(cfg); err == nil {
		t.Error("NewExtractor() expected error for unknown algorithm")
	}
}

func TestExtractorDeterminism(t *testing.T) {
	var pixels []RGB
	for range 5 {
		pixels = append(pixels, RGB{R: 250, G: 250, B: 250})
	}
	pixels = append(pixels, RGB{R: 240, G: 10, B: 10}, RGB{R: 10, G: 10, B: 240})

	tests := []struct {
		algorithm Algorithm
		seeded    bool
	}{
		{algorithm: AlgorithmKMeans, seeded: true},
		{algorithm: AlgorithmProminent, seeded: false},
		{algorithm: AlgorithmClusters, seeded: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.algorithm), func(t *testing.T) {
			if got := tt.algorithm.Seeded(); got != tt.seeded {
				t.Fatalf("Seeded() = %v, want %v", got, tt.seeded)
			}

			cfg := DefaultExtractorConfig()
			cfg.Algorithm = tt.algorithm

			var first *Palette
			for run := range 6 {
				extractor, err := NewExtractor(cfg)
				if err != nil {
					t.Fatalf("NewExtractor() error = %v", err)
				}
				palette, err := extractor.Extract(pixels, 2)
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				// Unseeded backends may merge colours or vary between runs,
				// but every pixel is still accounted for.
				assertPaletteInvariants(t, palette, 2, len(pixels))

				if run == 0 {
					first = palette
					continue
				}
				if tt.seeded && palette.String() != first.String() {
					t.Errorf("run %d = %s, want %s", run, palette, first)
				}
			}
		})
	}
}
