package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/ports"
)

// Cell is one polygon of the grid mesh, as handed from whatever loaded the
// shapefile.
type Cell struct {
	ID          core.UnitID
	CountryCode string
	Polygon     orb.Polygon
}

// MeshTopology implements ports.Topology over an axis-aligned grid mesh. Grid
// cells are rectangles in the mesh's projection, so their bounding box is the
// polygon itself: two cells touch exactly when their bounds overlap with zero
// width in at least one axis (shared edge or shared corner). This keeps the
// touches predicate exact without a general polygon-intersection engine.
//
// Immutable after construction; safe for concurrent use.
type MeshTopology struct {
	cells map[core.UnitID]meshCell
	order []core.UnitID
}

type meshCell struct {
	country  string
	bound    orb.Bound
	centroid ports.Point
}

// NewMeshTopology indexes the mesh. Duplicate ids and empty polygons are
// rejected: they indicate a corrupt shapefile export.
func NewMeshTopology(cells []Cell) (*MeshTopology, error) {
	m := &MeshTopology{cells: make(map[core.UnitID]meshCell, len(cells))}
	for _, c := range cells {
		if c.ID == "" {
			return nil, core.NewSchemaError("topology", len(m.order), "empty unit id")
		}
		if len(c.Polygon) == 0 || len(c.Polygon[0]) < 4 {
			return nil, core.NewSchemaError("topology", len(m.order), fmt.Sprintf("unit %s has a degenerate polygon", c.ID))
		}
		if _, dup := m.cells[c.ID]; dup {
			return nil, fmt.Errorf("%w: topology unit %s", core.ErrDuplicateRow, c.ID)
		}

		centroid, _ := planar.CentroidArea(c.Polygon)
		m.cells[c.ID] = meshCell{
			country:  c.CountryCode,
			bound:    c.Polygon.Bound(),
			centroid: ports.Point{X: centroid.X(), Y: centroid.Y()},
		}
		m.order = append(m.order, c.ID)
	}
	return m, nil
}

// RectCell builds a rectangular cell from its bounds. Grid meshes ship as
// rectangles; this is the common construction path for loaders and tests.
func RectCell(id core.UnitID, country string, minX, minY, maxX, maxY float64) Cell {
	return Cell{
		ID:          id,
		CountryCode: country,
		Polygon: orb.Polygon{orb.Ring{
			{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
		}},
	}
}

func (m *MeshTopology) HasUnit(id core.UnitID) bool {
	_, ok := m.cells[id]
	return ok
}

func (m *MeshTopology) UnitIDs() []core.UnitID {
	out := make([]core.UnitID, len(m.order))
	copy(out, m.order)
	return out
}

// Touches reports boundary contact (shared edge or vertex). Cells whose
// interiors overlap do not touch; an axis-aligned mesh cannot legally produce
// that case.
func (m *MeshTopology) Touches(a, b core.UnitID) (bool, error) {
	ca, ok := m.cells[a]
	if !ok {
		return false, fmt.Errorf("unknown topology unit %s", a)
	}
	cb, ok := m.cells[b]
	if !ok {
		return false, fmt.Errorf("unknown topology unit %s", b)
	}
	if !ca.bound.Intersects(cb.bound) {
		return false, nil
	}
	overlapX := min(ca.bound.Max.X(), cb.bound.Max.X()) - max(ca.bound.Min.X(), cb.bound.Min.X())
	overlapY := min(ca.bound.Max.Y(), cb.bound.Max.Y()) - max(ca.bound.Min.Y(), cb.bound.Min.Y())
	return overlapX == 0 || overlapY == 0, nil
}

func (m *MeshTopology) Centroid(id core.UnitID) (ports.Point, error) {
	c, ok := m.cells[id]
	if !ok {
		return ports.Point{}, fmt.Errorf("unknown topology unit %s", id)
	}
	return c.centroid, nil
}

func (m *MeshTopology) CountryOf(id core.UnitID) (string, error) {
	c, ok := m.cells[id]
	if !ok {
		return "", fmt.Errorf("unknown topology unit %s", id)
	}
	return c.country, nil
}

var _ ports.Topology = (*MeshTopology)(nil)
