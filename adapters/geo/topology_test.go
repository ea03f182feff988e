package geo

import (
	"errors"
	"testing"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/internal/spatial"
	"github.com/patterson-s/fast/ports"
)

// grid3x3 lays out unit squares with the focal cell "C" in the middle and
// neighbors named by their compass position.
func grid3x3(t *testing.T) *MeshTopology {
	t.Helper()
	topo, err := NewMeshTopology([]Cell{
		RectCell("NW", "NGA", 0, 2, 1, 3),
		RectCell("N", "NGA", 1, 2, 2, 3),
		RectCell("NE", "NGA", 2, 2, 3, 3),
		RectCell("W", "NGA", 0, 1, 1, 2),
		RectCell("C", "NGA", 1, 1, 2, 2),
		RectCell("E", "NGA", 2, 1, 3, 2),
		RectCell("SW", "NGA", 0, 0, 1, 1),
		RectCell("S", "NGA", 1, 0, 2, 1),
		RectCell("SE", "NGA", 2, 0, 3, 1),
		RectCell("far", "NGA", 10, 10, 11, 11),
	})
	if err != nil {
		t.Fatalf("NewMeshTopology: %v", err)
	}
	return topo
}

func TestTouches(t *testing.T) {
	topo := grid3x3(t)

	cases := []struct {
		a, b core.UnitID
		want bool
	}{
		{"C", "N", true},   // shared edge
		{"C", "E", true},   // shared edge
		{"C", "NE", true},  // shared corner
		{"C", "SW", true},  // shared corner
		{"C", "far", false},
		{"NW", "SE", false}, // same mesh, no contact
		{"NW", "E", false},
	}
	for _, c := range cases {
		got, err := topo.Touches(c.a, c.b)
		if err != nil {
			t.Fatalf("Touches(%s, %s): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Touches(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
		// Touching is symmetric.
		back, _ := topo.Touches(c.b, c.a)
		if back != got {
			t.Errorf("Touches(%s, %s) != Touches(%s, %s)", c.a, c.b, c.b, c.a)
		}
	}
}

func TestTouches_SelfIsNotContact(t *testing.T) {
	topo := grid3x3(t)
	// A cell's bounds fully overlap themselves: no zero-width axis.
	got, err := topo.Touches("C", "C")
	if err != nil {
		t.Fatalf("Touches: %v", err)
	}
	if got {
		t.Error("a cell must not touch itself")
	}
}

func TestTouches_UnknownUnit(t *testing.T) {
	topo := grid3x3(t)
	if _, err := topo.Touches("C", "nowhere"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestCentroid(t *testing.T) {
	topo := grid3x3(t)
	got, err := topo.Centroid("C")
	if err != nil {
		t.Fatalf("Centroid: %v", err)
	}
	if got != (ports.Point{X: 1.5, Y: 1.5}) {
		t.Errorf("Centroid(C) = %+v, want (1.5, 1.5)", got)
	}
}

// CountryOf must error on unknown units like Touches and Centroid do: an
// empty country code would silently read as a cross-border neighbor.
func TestCountryOf(t *testing.T) {
	topo := grid3x3(t)

	got, err := topo.CountryOf("C")
	if err != nil {
		t.Fatalf("CountryOf: %v", err)
	}
	if got != "NGA" {
		t.Errorf("CountryOf(C) = %q, want NGA", got)
	}

	if _, err := topo.CountryOf("nowhere"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestNewMeshTopology_Rejections(t *testing.T) {
	_, err := NewMeshTopology([]Cell{
		RectCell("A", "NGA", 0, 0, 1, 1),
		RectCell("A", "NGA", 1, 0, 2, 1),
	})
	if !errors.Is(err, core.ErrDuplicateRow) {
		t.Errorf("duplicate id: got %v, want ErrDuplicateRow", err)
	}

	_, err = NewMeshTopology([]Cell{{ID: "A", CountryCode: "NGA"}})
	if !core.IsSchemaError(err) {
		t.Errorf("empty polygon: got %v, want schema error", err)
	}

	_, err = NewMeshTopology([]Cell{RectCell("", "NGA", 0, 0, 1, 1)})
	if !core.IsSchemaError(err) {
		t.Errorf("empty id: got %v, want schema error", err)
	}
}

// The resolver and the mesh agree end to end: real rectangle geometry yields
// the full eight-neighbor ring with correct compass labels.
func TestMeshTopology_ResolvesFullRing(t *testing.T) {
	resolver := spatial.NewAdjacencyResolver(grid3x3(t))
	adj, err := resolver.Neighbors("C")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(adj) != 8 {
		t.Fatalf("expected 8 neighbors, got %d", len(adj))
	}
	for _, pos := range forecast.AllCompass {
		nb, ok := adj[pos]
		if !ok {
			t.Errorf("missing neighbor at %s", pos)
			continue
		}
		if nb.UnitID != core.UnitID(pos) {
			t.Errorf("neighbor at %s is %s", pos, nb.UnitID)
		}
	}
}
