package spatial

import (
	"testing"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/internal/testkit"
)

func TestNeighbors_FullRing(t *testing.T) {
	mesh := testkit.NewMesh3x3("NGA")
	resolver := NewAdjacencyResolver(mesh)

	adj, err := resolver.Neighbors("C")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(adj) != 8 {
		t.Fatalf("expected 8 neighbors, got %d", len(adj))
	}

	// Fixture cells are named after their expected compass position.
	for _, pos := range forecast.AllCompass {
		nb, ok := adj[pos]
		if !ok {
			t.Errorf("missing neighbor at %s", pos)
			continue
		}
		if nb.UnitID != core.UnitID(pos) {
			t.Errorf("neighbor at %s is %s", pos, nb.UnitID)
		}
		if nb.CrossBorder {
			t.Errorf("neighbor at %s flagged cross-border in a single-country mesh", pos)
		}
	}

	seen := map[core.UnitID]bool{}
	for _, nb := range adj {
		if seen[nb.UnitID] {
			t.Errorf("neighbor %s appears twice", nb.UnitID)
		}
		seen[nb.UnitID] = true
	}
}

func TestNeighbors_CrossBorderFlag(t *testing.T) {
	mesh := testkit.NewMesh3x3("NGA")
	mesh.SetCountry("N", "NER")
	mesh.SetCountry("NE", "NER")
	resolver := NewAdjacencyResolver(mesh)

	adj, err := resolver.Neighbors("C")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	for pos, nb := range adj {
		wantCross := nb.CountryCode != "NGA"
		if nb.CrossBorder != wantCross {
			t.Errorf("%s: cross-border = %v with country %q", pos, nb.CrossBorder, nb.CountryCode)
		}
	}
	if adj.CrossBorderCount() != 2 {
		t.Errorf("cross-border count = %d, want 2", adj.CrossBorderCount())
	}
}

// Grids outside the known mesh are expected at region edges: empty adjacency,
// not an error.
func TestNeighbors_UnknownGrid(t *testing.T) {
	resolver := NewAdjacencyResolver(testkit.NewMesh3x3("NGA"))
	adj, err := resolver.Neighbors("missing")
	if err != nil {
		t.Fatalf("unknown grid should not error, got %v", err)
	}
	if len(adj) != 0 {
		t.Errorf("unknown grid adjacency = %v, want empty", adj)
	}
}

func TestNeighbors_EdgeCellHasPartialRing(t *testing.T) {
	resolver := NewAdjacencyResolver(testkit.NewMesh3x3("NGA"))
	adj, err := resolver.Neighbors("NW")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(adj) != 3 {
		t.Errorf("corner cell has %d neighbors, want 3", len(adj))
	}
	for _, pos := range []forecast.Compass{forecast.East, forecast.South, forecast.SouthEast} {
		if _, ok := adj[pos]; !ok {
			t.Errorf("corner cell missing %s neighbor", pos)
		}
	}
}

// Two touching polygons resolving to the same compass label is a topology
// inconsistency, reported rather than silently overwritten.
func TestNeighbors_DuplicateLabelRejected(t *testing.T) {
	mesh := testkit.NewMesh3x3("NGA")
	mesh.SetCentroid("NE", 1, 2) // now due north, same as N

	resolver := NewAdjacencyResolver(mesh)
	_, err := resolver.Neighbors("C")
	if !core.IsTopologyError(err) {
		t.Fatalf("expected topology inconsistency, got %v", err)
	}
}

func TestNeighbors_ZeroDeltaRejected(t *testing.T) {
	mesh := testkit.NewMesh3x3("NGA")
	mesh.SetCentroid("N", 1, 1) // coincides with the focal centroid

	resolver := NewAdjacencyResolver(mesh)
	_, err := resolver.Neighbors("C")
	if !core.IsTopologyError(err) {
		t.Fatalf("expected topology inconsistency for zero delta, got %v", err)
	}
}

func TestNeighborContext(t *testing.T) {
	ctx := NeighborContext(30, []float64{10, 10, 10, 10})
	if ctx.Average != 10 || ctx.Max != 10 {
		t.Errorf("context = %+v, want avg 10 max 10", ctx)
	}
	if ctx.Comparison != NeighborsMuchHigher {
		t.Errorf("comparison = %q, want %q", ctx.Comparison, NeighborsMuchHigher)
	}

	cases := []struct {
		focal float64
		want  string
	}{
		{16, NeighborsMuchHigher}, // > 10*1.5
		{13, NeighborsHigher},     // > 10*1.2
		{10, NeighborsSimilar},
		{7, NeighborsLower},    // < 10*0.8
		{4, NeighborsMuchLower}, // < 10*0.5
	}
	for _, c := range cases {
		got := NeighborContext(c.focal, []float64{10, 10}).Comparison
		if got != c.want {
			t.Errorf("focal %v: comparison = %q, want %q", c.focal, got, c.want)
		}
	}

	if got := NeighborContext(5, nil); got.Comparison != NeighborsNoData {
		t.Errorf("no values: comparison = %q, want %q", got.Comparison, NeighborsNoData)
	}
}
