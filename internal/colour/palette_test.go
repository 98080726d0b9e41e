package colour

import (
	"math"
	"testing"
)

func TestNewPalette(t *testing.T) {
	palette := NewPalette([]Cluster{
		{Centroid: RGB{R: 255}, Count: 10},
		{Centroid: RGB{G: 255}, Count: 0},
		{Centroid: RGB{B: 255}, Count: 30},
		{Centroid: RGB{R: 1}, Count: 10},
	})

	if palette.Len() != 3 {
		t.Fatalf("Expected palette length 3 after dropping empty clusters, got %d", palette.Len())
	}
	if palette.Total != 50 {
		t.Errorf("Total = %d, want 50", palette.Total)
	}

	want := []RGB{{B: 255}, {R: 255}, {R: 1}}
	for i, c := range palette.Clusters {
		if c.Centroid != want[i] {
			t.Errorf("Clusters[%d].Centroid = %+v, want %+v (stable descending order)", i, c.Centroid, want[i])
		}
	}

	wantFractions := []float64{0.6, 0.2, 0.2}
	for i, c := range palette.Clusters {
		if math.Abs(c.Fraction-wantFractions[i]) > 1e-9 {
			t.Errorf("Clusters[%d].Fraction = %v, want %v", i, c.Fraction, wantFractions[i])
		}
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette([]Cluster{
		{Centroid: RGB{R: 0x1a, G: 0x2b, B: 0x3c}, Count: 2},
		{Centroid: RGB{R: 0xff, G: 0xff, B: 0xff}, Count: 1},
	})

	got := palette.ToHex()
	want := []string{"#1a2b3c", "#ffffff"}
	if len(got) != len(want) {
		t.Fatalf("ToHex() returned %d colours, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPaletteAll(t *testing.T) {
	palette := NewPalette([]Cluster{
		{Centroid: RGB{R: 9}, Count: 3},
		{Centroid: RGB{G: 9}, Count: 2},
		{Centroid: RGB{B: 9}, Count: 1},
	})

	var seen []int
	for i, c := range palette.All() {
		if c != palette.Clusters[i] {
			t.Errorf("All() yielded %+v at %d, want %+v", c, i, palette.Clusters[i])
		}
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("All() yielded %v, want to stop after index 1", seen)
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}
}
