package colour

import (
	"fmt"
	"slices"
	"strings"
)

// Cluster is one group of pixels produced by an extractor.
type Cluster struct {
	// Centroid is Mean rounded to the nearest 8-bit colour.
	Centroid RGB `json:"centroid"`
	// Mean is the unrounded mean of the member pixels.
	Mean Point `json:"-"`
	// Count is the number of pixels assigned to the cluster.
	Count int `json:"count"`
	// Fraction is Count divided by the total number of pixels.
	Fraction float64 `json:"fraction"`
}

// Palette is an ordered set of clusters, most dominant first.
type Palette struct {
	Clusters []Cluster
	// Total is the number of pixels the palette was extracted from.
	Total int
}

// NewPalette builds a palette from raw clusters.
// Empty clusters are dropped, fractions are computed from Count, and the
// clusters are stably sorted by descending population.
func NewPalette(clusters []Cluster) *Palette {
	total := 0
	kept := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.Count <= 0 {
			continue
		}
		total += c.Count
		kept = append(kept, c)
	}

	for i := range kept {
		kept[i].Fraction = float64(kept[i].Count) / float64(total)
	}

	slices.SortStableFunc(kept, func(a, b Cluster) int {
		return b.Count - a.Count
	})

	return &Palette{Clusters: kept, Total: total}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Clusters)
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Clusters))
	for i, c := range p.Clusters {
		hexColours[i] = c.Centroid.Hex()
	}
	return hexColours
}

// All returns an iterator over all clusters in the palette.
func (p *Palette) All() func(func(int, Cluster) bool) {
	return func(yield func(int, Cluster) bool) {
		for i, c := range p.Clusters {
			if !yield(i, c) {
				return
			}
		}
	}
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Clusters) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Clusters))
	for i, c := range p.Clusters {
		fmt.Fprintf(&sb, "  %2d: %s (%s) %5.1f%%\n", i+1, c.Centroid.Hex(), c.Centroid.String(), c.Fraction*100)
	}
	return sb.String()
}
