package testkit

import (
	"fmt"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/ports"
)

// Unit builds a forecast unit fixture.
func Unit(id, country string, month int, p, intensity float64) forecast.Unit {
	return forecast.Unit{
		UnitID:             core.UnitID(id),
		CountryCode:        country,
		TemporalID:         core.MonthID(month),
		Probability:        p,
		PredictedIntensity: intensity,
	}
}

// Series builds a gap-free historical series fixture starting at month 500.
func Series(id string, fatalities ...float64) forecast.HistoricalSeries {
	points := make([]forecast.SeriesPoint, len(fatalities))
	for i, f := range fatalities {
		points[i] = forecast.SeriesPoint{
			TemporalID: core.MonthID(500 + i),
			Fatalities: f,
		}
	}
	return forecast.HistoricalSeries{UnitID: core.UnitID(id), Points: points}
}

// MeshCell is one cell of a fake rectilinear mesh.
type MeshCell struct {
	ID      string
	Country string
	X, Y    float64
}

// Mesh is a centroid-table Topology fake: cells touch when their centroids
// are at most one step apart on the unit lattice. Good enough for resolver
// tests without real geometry.
type Mesh struct {
	cells map[core.UnitID]MeshCell
	order []core.UnitID
}

// NewMesh builds a fake topology from cells.
func NewMesh(cells ...MeshCell) *Mesh {
	m := &Mesh{cells: make(map[core.UnitID]MeshCell, len(cells))}
	for _, c := range cells {
		id := core.UnitID(c.ID)
		m.cells[id] = c
		m.order = append(m.order, id)
	}
	return m
}

// NewMesh3x3 builds the canonical 3x3 lattice with the focal cell at "C" and
// neighbors named by compass position, all in the given country.
func NewMesh3x3(country string) *Mesh {
	return NewMesh(
		MeshCell{ID: "NW", Country: country, X: 0, Y: 2},
		MeshCell{ID: "N", Country: country, X: 1, Y: 2},
		MeshCell{ID: "NE", Country: country, X: 2, Y: 2},
		MeshCell{ID: "W", Country: country, X: 0, Y: 1},
		MeshCell{ID: "C", Country: country, X: 1, Y: 1},
		MeshCell{ID: "E", Country: country, X: 2, Y: 1},
		MeshCell{ID: "SW", Country: country, X: 0, Y: 0},
		MeshCell{ID: "S", Country: country, X: 1, Y: 0},
		MeshCell{ID: "SE", Country: country, X: 2, Y: 0},
	)
}

// SetCountry reassigns a cell's country, for cross-border fixtures.
func (m *Mesh) SetCountry(id, country string) {
	c := m.cells[core.UnitID(id)]
	c.Country = country
	m.cells[core.UnitID(id)] = c
}

// SetCentroid moves a cell's centroid, for inconsistent-topology fixtures.
func (m *Mesh) SetCentroid(id string, x, y float64) {
	c := m.cells[core.UnitID(id)]
	c.X, c.Y = x, y
	m.cells[core.UnitID(id)] = c
}

func (m *Mesh) HasUnit(id core.UnitID) bool {
	_, ok := m.cells[id]
	return ok
}

func (m *Mesh) UnitIDs() []core.UnitID {
	out := make([]core.UnitID, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Mesh) Touches(a, b core.UnitID) (bool, error) {
	ca, ok := m.cells[a]
	if !ok {
		return false, fmt.Errorf("unknown unit %s", a)
	}
	cb, ok := m.cells[b]
	if !ok {
		return false, fmt.Errorf("unknown unit %s", b)
	}
	dx := ca.X - cb.X
	dy := ca.Y - cb.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1, nil
}

func (m *Mesh) Centroid(id core.UnitID) (ports.Point, error) {
	c, ok := m.cells[id]
	if !ok {
		return ports.Point{}, fmt.Errorf("unknown unit %s", id)
	}
	return ports.Point{X: c.X, Y: c.Y}, nil
}

func (m *Mesh) CountryOf(id core.UnitID) (string, error) {
	c, ok := m.cells[id]
	if !ok {
		return "", fmt.Errorf("unknown unit %s", id)
	}
	return c.Country, nil
}
