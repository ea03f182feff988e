package analysis

import (
	"math"
	"sort"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
)

// DefaultCohortSize is the peer-group size the reports print.
const DefaultCohortSize = 3

// MatchCohort selects up to targetSize peers for a unit. Peers sharing the
// unit's exact (risk, intensity) category pair form the natural cohort, kept
// in population order. When the natural cohort falls short, the remaining
// population backfills it ordered by ascending |predicted intensity - unit's
// predicted intensity|, ties broken by population order. The query unit is
// never a member of its own cohort.
//
// A population too small to fill targetSize returns everything available;
// only the match mode records that backfill happened.
func MatchCohort(unit forecast.Unit, population []forecast.Unit, targetSize int) (forecast.CohortResult, error) {
	if targetSize <= 0 {
		return forecast.CohortResult{}, core.NewInvalidInputError("target_size", float64(targetSize))
	}

	pair, err := forecast.Classify(unit)
	if err != nil {
		return forecast.CohortResult{}, err
	}

	var natural []forecast.Unit
	var rest []forecast.Unit
	for _, cand := range population {
		if cand.UnitID == unit.UnitID {
			continue
		}
		candPair, err := forecast.Classify(cand)
		if err != nil {
			return forecast.CohortResult{}, err
		}
		if candPair == pair {
			natural = append(natural, cand)
		} else {
			rest = append(rest, cand)
		}
	}

	if len(natural) >= targetSize {
		members := make([]forecast.Unit, targetSize)
		copy(members, natural[:targetSize])
		return forecast.CohortResult{Members: members, Mode: forecast.MatchExact}, nil
	}

	members := make([]forecast.Unit, len(natural), targetSize)
	copy(members, natural)

	// Stable sort keeps population order among equal distances.
	sort.SliceStable(rest, func(i, j int) bool {
		di := math.Abs(rest[i].PredictedIntensity - unit.PredictedIntensity)
		dj := math.Abs(rest[j].PredictedIntensity - unit.PredictedIntensity)
		return di < dj
	})

	for _, cand := range rest {
		if len(members) >= targetSize {
			break
		}
		members = append(members, cand)
	}

	mode := forecast.MatchExact
	if len(members) > len(natural) {
		mode = forecast.MatchFallback
	}
	return forecast.CohortResult{Members: members, Mode: mode}, nil
}
