package naming

import (
	"slices"

	"github.com/jmylchreest/img2color/internal/colour"
)

// nearestIndex finds the entry closest to a colour. It returns the entry's
// position in canonical order and the squared distance to it. Ties go to the
// lowest position.
type nearestIndex interface {
	nearest(target colour.RGB) (int, int)
}

// linearIndex scans every entry.
type linearIndex struct {
	points []colour.RGB
}

func (l linearIndex) nearest(target colour.RGB) (int, int) {
	best, bestDist := -1, 0
	for i, p := range l.points {
		if d := colour.DistanceSquared(target, p); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// kdNode is one node of a 3-d tree over RGB space.
type kdNode struct {
	point       colour.RGB
	index       int
	axis        int
	left, right *kdNode
}

// kdTree accelerates nearest-entry queries for large taxonomies.
type kdTree struct {
	root *kdNode
}

func newKDTree(points []colour.RGB) *kdTree {
	indices := make([]int, len(points))
	for i := range indices {
		indices[i] = i
	}
	return &kdTree{root: buildKDNode(points, indices)}
}

// buildKDNode splits on the axis with the widest spread, at the median.
func buildKDNode(points []colour.RGB, indices []int) *kdNode {
	if len(indices) == 0 {
		return nil
	}

	axis := widestAxis(points, indices)
	slices.SortFunc(indices, func(a, b int) int {
		if d := component(points[a], axis) - component(points[b], axis); d != 0 {
			return d
		}
		return a - b
	})

	median := len(indices) / 2
	return &kdNode{
		point: points[indices[median]],
		index: indices[median],
		axis:  axis,
		left:  buildKDNode(points, slices.Clone(indices[:median])),
		right: buildKDNode(points, slices.Clone(indices[median+1:])),
	}
}

func widestAxis(points []colour.RGB, indices []int) int {
	best, bestSpread := 0, -1
	for axis := range 3 {
		lo, hi := 255, 0
		for _, i := range indices {
			v := component(points[i], axis)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if hi-lo > bestSpread {
			best, bestSpread = axis, hi-lo
		}
	}
	return best
}

func component(c colour.RGB, axis int) int {
	switch axis {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func (t *kdTree) nearest(target colour.RGB) (int, int) {
	best, bestDist := -1, 0
	t.root.search(target, &best, &bestDist)
	return best, bestDist
}

func (n *kdNode) search(target colour.RGB, best, bestDist *int) {
	if n == nil {
		return
	}

	d := colour.DistanceSquared(target, n.point)
	if *best < 0 || d < *bestDist || (d == *bestDist && n.index < *best) {
		*best, *bestDist = n.index, d
	}

	diff := component(target, n.axis) - component(n.point, n.axis)
	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}

	near.search(target, best, bestDist)
	// The far side can still hold an equally distant entry with a lower
	// index, so it is pruned only when strictly farther.
	if diff*diff <= *bestDist {
		far.search(target, best, bestDist)
	}
}
