package naming

import (
	"math"
	"slices"

	"github.com/jmylchreest/img2color/internal/colour"
)

// treeThreshold is the entry count from which a k-d tree replaces the
// linear scan.
const treeThreshold = 128

// lookup is the per-shape nearest-name capability of a taxonomy.
type lookup interface {
	Lookup(target colour.RGB) Match
}

// flatLookup reports the name of the nearest entry.
type flatLookup struct {
	id      ID
	entries []Entry
	index   nearestIndex
}

func (l flatLookup) Lookup(target colour.RGB) Match {
	m, _ := l.match(target)
	return m
}

func (l flatLookup) match(target colour.RGB) (Match, Entry) {
	i, d := l.index.nearest(target)
	e := l.entries[i]
	return Match{
		Taxonomy: l.id,
		Name:     e.Name,
		RGB:      e.RGB,
		Distance: math.Sqrt(float64(d)),
	}, e
}

// categorisedLookup also reports the nearest entry's parent category.
type categorisedLookup struct {
	flatLookup
}

func (l categorisedLookup) Lookup(target colour.RGB) Match {
	m, e := l.match(target)
	m.Category = e.Category
	return m
}

// Taxonomy is an immutable, ordered set of named reference colours.
type Taxonomy struct {
	ID    ID
	Name  string
	Shape Shape

	entries []Entry
	lookup  lookup
}

// NewTaxonomy builds a taxonomy over entries in canonical order. The slice
// is copied. Large taxonomies get a k-d tree index.
func NewTaxonomy(id ID, name string, shape Shape, entries []Entry) *Taxonomy {
	return newTaxonomy(id, name, shape, entries, len(entries) >= treeThreshold)
}

func newTaxonomy(id ID, name string, shape Shape, entries []Entry, useTree bool) *Taxonomy {
	entries = slices.Clone(entries)

	points := make([]colour.RGB, len(entries))
	for i, e := range entries {
		points[i] = e.RGB
	}

	var index nearestIndex = linearIndex{points: points}
	if useTree {
		index = newKDTree(points)
	}

	flat := flatLookup{id: id, entries: entries, index: index}
	t := &Taxonomy{ID: id, Name: name, Shape: shape, entries: entries, lookup: flat}
	if shape == Categorised {
		t.lookup = categorisedLookup{flat}
	}
	return t
}

// Len returns the number of entries.
func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in canonical order.
func (t *Taxonomy) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Categories returns the distinct categories in first-seen order.
func (t *Taxonomy) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range t.entries {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// Lookup returns the entry nearest to target by Euclidean RGB distance.
// Equidistant entries resolve to the earliest in canonical order.
func (t *Taxonomy) Lookup(target colour.RGB) (Match, error) {
	if len(t.entries) == 0 {
		return Match{}, &TaxonomyError{ID: t.ID, Err: ErrEmptyTaxonomy}
	}
	return t.lookup.Lookup(target), nil
}
