package colour

import (
	"fmt"
	"math"
	"slices"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract reduces the pixels to a palette of at most k colours.
	Extract(pixels []RGB, k int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses the built-in seeded k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmProminent uses the prominentcolor k-means implementation.
	AlgorithmProminent Algorithm = "prominent"

	// AlgorithmClusters uses the muesli/kmeans partitioner.
	AlgorithmClusters Algorithm = "clusters"
)

const (
	// DefaultColourCount is the number of palette entries extracted by default.
	DefaultColourCount = 5

	// DefaultAccuracy trades iterations for speed (1-100).
	DefaultAccuracy = 60

	// maxIterationsAtFullAccuracy is the iteration cap at accuracy 100.
	maxIterationsAtFullAccuracy = 512
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmProminent,
		AlgorithmClusters,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Seeded reports whether the algorithm honours ExtractorConfig.Seed.
// The library backends seed themselves, so their palettes can differ
// between runs over the same pixels.
func (a Algorithm) Seeded() bool {
	return a == AlgorithmKMeans
}

// IterationsForAccuracy maps an accuracy percentage to an iteration cap.
func IterationsForAccuracy(accuracy int) int {
	return max(maxIterationsAtFullAccuracy*accuracy/100, 1)
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
	// Accuracy in percent; controls the iteration cap.
	Accuracy int
	// Convergence is the centroid movement, in RGB units, at or below which
	// iteration stops. Only used by AlgorithmKMeans.
	Convergence float64
	// Seed is only used by AlgorithmKMeans, see Algorithm.Seeded.
	Seed uint64
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:   AlgorithmKMeans,
		ColorCount:  DefaultColourCount,
		Accuracy:    DefaultAccuracy,
		Convergence: DefaultConvergence,
		Seed:        DefaultSeed,
	}
}

// Validate validates the extractor configuration. There is no upper bound
// on ColorCount; extractors clamp it to the number of distinct colours.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", ErrInvalidInput, c.Algorithm, ValidAlgorithms())
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidInput, c.ColorCount)
	}
	if c.Accuracy < 1 || c.Accuracy > 100 {
		return fmt.Errorf("%w: accuracy must be between 1 and 100, got %d", ErrInvalidInput, c.Accuracy)
	}
	if c.Convergence < 0 || math.IsNaN(c.Convergence) {
		return fmt.Errorf("%w: convergence must not be negative, got %v", ErrInvalidInput, c.Convergence)
	}
	return nil
}

// NewExtractor creates a new Extractor for the configuration.
func NewExtractor(cfg ExtractorConfig) (Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	iterations := IterationsForAccuracy(cfg.Accuracy)
	switch cfg.Algorithm {
	case AlgorithmKMeans:
		return NewKMeansExtractor().
			WithMaxIterations(iterations).
			WithConvergence(cfg.Convergence).
			WithSeed(cfg.Seed), nil
	case AlgorithmProminent:
		return NewProminentExtractor(), nil
	case AlgorithmClusters:
		return NewClustersExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", cfg.Algorithm, ValidAlgorithms())
	}
}
