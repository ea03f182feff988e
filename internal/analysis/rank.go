package analysis

import (
	"sort"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
)

// RankWithin places a unit inside a partition by predicted intensity,
// descending. Ties keep partition order (stable sort) - a deterministic but
// arbitrary tie-break. A unit absent from its partition returns the zero-value
// "unranked" sentinel: absence happens routinely when a unit's own series is
// missing, so it is not an error.
func RankWithin(unitID core.UnitID, partition []forecast.Unit) forecast.RankResult {
	if len(partition) == 0 {
		return forecast.RankResult{}
	}

	sorted := make([]forecast.Unit, len(partition))
	copy(sorted, partition)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PredictedIntensity > sorted[j].PredictedIntensity
	})

	for i, u := range sorted {
		if u.UnitID == unitID {
			rank := i + 1
			total := len(sorted)
			return forecast.RankResult{
				Rank:   rank,
				Total:  total,
				Higher: rank - 1,
				Lower:  total - rank,
			}
		}
	}
	return forecast.RankResult{}
}

// PartitionByCountry filters a month population down to one country, keeping
// population order.
func PartitionByCountry(population []forecast.Unit, countryCode string) []forecast.Unit {
	var out []forecast.Unit
	for _, u := range population {
		if u.CountryCode == countryCode {
			out = append(out, u)
		}
	}
	return out
}

// PartitionByIntensityBucket filters a month population down to the units
// sharing one intensity band, keeping population order. Used for the global
// "ranks #N of M in this fatality category" context.
func PartitionByIntensityBucket(population []forecast.Unit, bucket forecast.IntensityCategory) ([]forecast.Unit, error) {
	var out []forecast.Unit
	for _, u := range population {
		cat, err := forecast.ClassifyIntensity(u.PredictedIntensity)
		if err != nil {
			return nil, err
		}
		if cat == bucket {
			out = append(out, u)
		}
	}
	return out, nil
}
