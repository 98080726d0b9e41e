package colour

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ClustersExtractor delegates clustering to muesli/kmeans.
// Initialisation is random, so repeated runs may differ.
type ClustersExtractor struct {
	deltaThreshold float64
}

// NewClustersExtractor creates a ClustersExtractor that stops once fewer
// than 1% of the points change cluster.
func NewClustersExtractor() *ClustersExtractor {
	return &ClustersExtractor{deltaThreshold: 0.01}
}

// Extract implements Extractor.
func (e *ClustersExtractor) Extract(pixels []RGB, k int) (*Palette, error) {
	k, exact, err := prepare(pixels, k)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return exact, nil
	}

	observations := make(clusters.Observations, len(pixels))
	for i, p := range pixels {
		observations[i] = clusters.Coordinates{float64(p.R), float64(p.G), float64(p.B)}
	}

	km, err := kmeans.NewWithOptions(e.deltaThreshold, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create partitioner: %w", err)
	}
	parts, err := km.Partition(observations, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partitioning failed: %w", err)
	}

	out := make([]Cluster, 0, len(parts))
	for _, part := range parts {
		mean := Point{R: part.Center[0], G: part.Center[1], B: part.Center[2]}
		out = append(out, Cluster{Centroid: mean.RGB(), Mean: mean, Count: len(part.Observations)})
	}
	return NewPalette(out), nil
}
