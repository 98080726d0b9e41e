package naming

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/jmylchreest/img2color/internal/colour"
)

func randomRGB(rng *rand.Rand) colour.RGB {
	return colour.RGB{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}
}

func randomEntries(rng *rand.Rand, n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Name: string(rune('a' + i%26)), RGB: randomRGB(rng)}
	}
	return entries
}

func TestKDTreeMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))

	for trial := range 20 {
		entries := randomEntries(rng, 1+rng.IntN(600))
		// Duplicate some points so ties are exercised.
		for i := 0; i+7 < len(entries); i += 7 {
			entries[i+7].RGB = entries[i].RGB
		}

		points := make([]colour.RGB, len(entries))
		for i, e := range entries {
			points[i] = e.RGB
		}
		linear := linearIndex{points: points}
		tree := newKDTree(points)

		for range 200 {
			target := randomRGB(rng)
			li, ld := linear.nearest(target)
			ti, td := tree.nearest(target)
			if li != ti || ld != td {
				t.Fatalf("trial %d: target %+v: linear (%d, %d) != tree (%d, %d)", trial, target, li, ld, ti, td)
			}
		}
	}
}

func TestLookupTieBreak(t *testing.T) {
	entries := []Entry{
		{Name: "first", RGB: colour.RGB{R: 10}},
		{Name: "second", RGB: colour.RGB{R: 30}},
		{Name: "third", RGB: colour.RGB{R: 10}},
	}

	for _, useTree := range []bool{false, true} {
		tax := newTaxonomy("tie", "Tie", Flat, entries, useTree)

		m, err := tax.Lookup(colour.RGB{R: 20})
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if m.Name != "first" {
			t.Errorf("useTree=%v: equidistant Lookup() = %q, want %q", useTree, m.Name, "first")
		}

		m, _ = tax.Lookup(colour.RGB{R: 10})
		if m.Name != "first" || m.Distance != 0 {
			t.Errorf("useTree=%v: duplicate point Lookup() = %+v, want first at distance 0", useTree, m)
		}
	}
}

func TestLookupIsNearest(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	entries := randomEntries(rng, 300)

	for _, useTree := range []bool{false, true} {
		tax := newTaxonomy("random", "Random", Flat, entries, useTree)
		for range 500 {
			target := randomRGB(rng)
			m, err := tax.Lookup(target)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			for _, e := range entries {
				if d := colour.Distance(target, e.RGB); d < m.Distance {
					t.Fatalf("useTree=%v: Lookup(%+v) = %+v, but %+v is closer (%v)", useTree, target, m, e, d)
				}
			}
			if m.Distance != colour.Distance(target, m.RGB) {
				t.Fatalf("Match.Distance = %v, want %v", m.Distance, colour.Distance(target, m.RGB))
			}
		}
	}
}

func TestLookupShapes(t *testing.T) {
	entries := []Entry{
		{Name: "Scarlet", Category: "Red", RGB: colour.RGB{R: 255, G: 36}},
		{Name: "Navy", Category: "Blue", RGB: colour.RGB{B: 128}},
	}

	categorised := NewTaxonomy("design", "Design", Categorised, entries)
	m, err := categorised.Lookup(colour.RGB{B: 100})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if m.Name != "Navy" || m.Category != "Blue" || m.Taxonomy != "design" {
		t.Errorf("categorised Lookup() = %+v, want Navy/Blue", m)
	}

	flat := NewTaxonomy("plain", "Plain", Flat, entries)
	m, _ = flat.Lookup(colour.RGB{R: 250})
	if m.Name != "Scarlet" || m.Category != "" {
		t.Errorf("flat Lookup() = %+v, want Scarlet without category", m)
	}

	if got := categorised.Categories(); len(got) != 2 || got[0] != "Red" || got[1] != "Blue" {
		t.Errorf("Categories() = %v, want [Red Blue]", got)
	}
}

func TestLookupEmptyTaxonomy(t *testing.T) {
	tax := NewTaxonomy("empty", "Empty", Flat, nil)

	_, err := tax.Lookup(colour.RGB{})
	if !errors.Is(err, ErrEmptyTaxonomy) {
		t.Fatalf("Lookup() error = %v, want ErrEmptyTaxonomy", err)
	}

	var taxErr *TaxonomyError
	if !errors.As(err, &taxErr) || taxErr.ID != "empty" {
		t.Errorf("Lookup() error = %v, want *TaxonomyError for %q", err, "empty")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	tax := NewTaxonomy("t", "T", Flat, []Entry{{Name: "a"}})
	tax.Entries()[0].Name = "changed"
	if tax.Entries()[0].Name != "a" {
		t.Error("Entries() exposed internal state")
	}
}
