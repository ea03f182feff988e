package spatial

import (
	"fmt"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/ports"
)

// AdjacencyResolver resolves the (up to) eight geographic neighbors of a grid
// cell from polygon topology. It is geometry-library agnostic: all polygon
// predicates come from the injected Topology port.
type AdjacencyResolver struct {
	topo ports.Topology
}

// NewAdjacencyResolver creates a resolver over a polygon mesh.
func NewAdjacencyResolver(topo ports.Topology) *AdjacencyResolver {
	return &AdjacencyResolver{topo: topo}
}

// Neighbors returns the focal cell's adjacency, labeled by compass direction.
// A grid id outside the mesh returns an empty adjacency, not an error: grids
// beyond the known mesh are expected at region edges. Two touching polygons
// mapping to the same compass label is a topology inconsistency and is
// reported as an error rather than silently overwritten.
func (r *AdjacencyResolver) Neighbors(gridID core.UnitID) (forecast.Adjacency, error) {
	if !r.topo.HasUnit(gridID) {
		return forecast.Adjacency{}, nil
	}

	focal, err := r.topo.Centroid(gridID)
	if err != nil {
		return nil, err
	}
	focalCountry, err := r.topo.CountryOf(gridID)
	if err != nil {
		return nil, err
	}

	adj := forecast.Adjacency{}
	for _, id := range r.topo.UnitIDs() {
		if id == gridID {
			continue
		}
		touches, err := r.topo.Touches(gridID, id)
		if err != nil {
			return nil, err
		}
		if !touches {
			continue
		}

		c, err := r.topo.Centroid(id)
		if err != nil {
			return nil, err
		}
		pos, err := compassOf(gridID, id, focal, c)
		if err != nil {
			return nil, err
		}
		if existing, dup := adj[pos]; dup {
			return nil, core.NewTopologyError(gridID.String(),
				fmt.Sprintf("units %s and %s both resolve to %s", existing.UnitID, id, pos))
		}

		country, err := r.topo.CountryOf(id)
		if err != nil {
			return nil, err
		}
		adj[pos] = forecast.Neighbor{
			UnitID:      id,
			CountryCode: country,
			CrossBorder: country != focalCountry,
		}
	}
	return adj, nil
}

// compassOf labels a neighbor by the sign of its centroid delta from the
// focal centroid. A neighbor with both deltas zero shares the focal centroid,
// which the mesh cannot legally produce.
func compassOf(focalID, neighborID core.UnitID, focal, neighbor ports.Point) (forecast.Compass, error) {
	var ns, ew string
	switch {
	case neighbor.Y > focal.Y:
		ns = "N"
	case neighbor.Y < focal.Y:
		ns = "S"
	}
	switch {
	case neighbor.X > focal.X:
		ew = "E"
	case neighbor.X < focal.X:
		ew = "W"
	}
	if ns == "" && ew == "" {
		return "", core.NewTopologyError(focalID.String(),
			fmt.Sprintf("unit %s shares the focal centroid", neighborID))
	}
	return forecast.Compass(ns + ew), nil
}
