package colour

import (
	"math"
	"math/rand/v2"
)

const (
	// DefaultSeed seeds centroid initialisation so repeated runs agree.
	DefaultSeed uint64 = 0x1a2b3c4d

	// DefaultConvergence is the largest centroid movement, in RGB units,
	// at which iteration stops. Zero iterates until no centroid moves.
	DefaultConvergence = 0.5
)

// KMeansExtractor implements colour extraction using k-means clustering
// (k-means++ initialisation followed by Lloyd iterations).
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	seed          uint64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: IterationsForAccuracy(DefaultAccuracy),
		convergence:   DefaultConvergence,
		seed:          DefaultSeed,
	}
}

// WithMaxIterations sets the iteration cap. Values below 1 are raised to 1.
func (e *KMeansExtractor) WithMaxIterations(n int) *KMeansExtractor {
	e.maxIterations = max(n, 1)
	return e
}

// WithConvergence sets the centroid movement threshold.
func (e *KMeansExtractor) WithConvergence(threshold float64) *KMeansExtractor {
	e.convergence = threshold
	return e
}

// WithSeed sets the initialisation seed.
func (e *KMeansExtractor) WithSeed(seed uint64) *KMeansExtractor {
	e.seed = seed
	return e
}

// Extract clusters the pixels into at most k colours.
// Each cluster is weighted by the fraction of pixels assigned to it.
func (e *KMeansExtractor) Extract(pixels []RGB, k int) (*Palette, error) {
	k, exact, err := prepare(pixels, k)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return exact, nil
	}

	points := make([]Point, len(pixels))
	for i, p := range pixels {
		points[i] = p.Point()
	}

	rng := rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))
	centroids := initialiseCentroids(points, k, rng)
	assignments := make([]int, len(points))

	var counts []int
	for iter := 0; iter < max(e.maxIterations, 1); iter++ {
		for i, point := range points {
			assignments[i] = nearestCentroid(point, centroids)
		}

		var next []Point
		next, counts = recalculateCentroids(points, assignments, centroids)

		movement := 0.0
		for i := range centroids {
			movement = math.Max(movement, centroids[i].distance(next[i]))
		}
		centroids = next

		if movement <= e.convergence {
			break
		}
	}

	clusters := make([]Cluster, len(centroids))
	for i, c := range centroids {
		clusters[i] = Cluster{Centroid: c.RGB(), Mean: c, Count: counts[i]}
	}
	return NewPalette(clusters), nil
}

// initialiseCentroids picks k starting centroids with k-means++: the first
// uniformly, each following one with probability proportional to its
// squared distance from the nearest centroid already chosen.
func initialiseCentroids(points []Point, k int, rng *rand.Rand) []Point {
	centroids := make([]Point, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, point.distanceSquared(c))
			}
			distances[i] = minDist
			total += minDist
		}

		// Fewer distinct colours than k never reaches here, so total > 0.
		target := rng.Float64() * total
		chosen := -1
		cumulative := 0.0
		for i, d := range distances {
			if d == 0 {
				continue
			}
			chosen = i
			cumulative += d
			if cumulative >= target {
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid; ties go to the
// lowest index.
func nearestCentroid(point Point, centroids []Point) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, c := range centroids {
		if d := point.distanceSquared(c); d < minDist {
			minDist = d
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids moves each centroid to the mean of its members.
// Centroids without members keep their previous position.
func recalculateCentroids(points []Point, assignments []int, previous []Point) ([]Point, []int) {
	k := len(previous)
	sums := make([]Point, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]Point, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = Point{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}

	return centroids, counts
}
