package ports

import (
	"github.com/patterson-s/fast/domain/core"
)

// Point is a centroid coordinate in the mesh's native projection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Topology is the injected geometry capability the adjacency resolver runs
// against. Keeping it an interface keeps the resolver geometry-library
// agnostic: implementations may wrap any polygon engine, or a precomputed
// neighbor table. Implementations must be safe for concurrent use.
type Topology interface {
	// HasUnit reports whether the mesh knows the unit. Units outside the mesh
	// are expected at region edges.
	HasUnit(id core.UnitID) bool

	// UnitIDs enumerates every unit in the mesh, in stable order.
	UnitIDs() []core.UnitID

	// Touches reports whether two polygons share a boundary edge or vertex.
	// Mere bounding-box overlap does not count.
	Touches(a, b core.UnitID) (bool, error)

	// Centroid returns the polygon's centroid.
	Centroid(id core.UnitID) (Point, error)

	// CountryOf returns the country code owning the unit's polygon. Unknown
	// units error, as with Touches and Centroid: an empty country code would
	// silently read as a cross-border neighbor.
	CountryOf(id core.UnitID) (string, error)
}
