package spatial

import (
	"github.com/montanaflynn/stats"

	"github.com/patterson-s/fast/domain/forecast"
)

// Neighbor comparison labels.
const (
	NeighborsMuchHigher = "substantially higher than neighbors"
	NeighborsHigher     = "higher than neighbors"
	NeighborsSimilar    = "similar to neighbors"
	NeighborsLower      = "lower than neighbors"
	NeighborsMuchLower  = "substantially lower than neighbors"
	NeighborsNoData     = "no neighbor data"
)

// NeighborContext summarizes the focal cell's forecast against its neighbors'
// forecasts for the same month. Neighbors without a forecast row are simply
// omitted from values by the caller.
func NeighborContext(focalValue float64, values []float64) forecast.NeighborContext {
	if len(values) == 0 {
		return forecast.NeighborContext{Comparison: NeighborsNoData}
	}

	avg, _ := stats.Mean(values)
	max, _ := stats.Max(values)

	comparison := NeighborsSimilar
	switch {
	case focalValue > avg*1.5:
		comparison = NeighborsMuchHigher
	case focalValue > avg*1.2:
		comparison = NeighborsHigher
	case focalValue < avg*0.5:
		comparison = NeighborsMuchLower
	case focalValue < avg*0.8:
		comparison = NeighborsLower
	}

	return forecast.NeighborContext{Average: avg, Max: max, Comparison: comparison}
}
