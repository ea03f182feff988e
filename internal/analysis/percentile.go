package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/patterson-s/fast/domain/core"
)

// Percentile returns 100 times the fraction of the population less than or
// equal to value (inclusive rank). Ties count, so a value equal to the
// population minimum with duplicates yields a non-zero percentile. An empty
// population is a caller bug, not a degenerate 0 or 100.
func Percentile(value float64, population []float64) (float64, error) {
	if len(population) == 0 {
		return 0, core.NewEmptyPopulationError("percentile")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, core.NewInvalidInputError("value", value)
	}
	atOrBelow := 0
	for _, v := range population {
		if v <= value {
			atOrBelow++
		}
	}
	return 100 * float64(atOrBelow) / float64(len(population)), nil
}

// PopulationSummary carries the reference-population statistics printed next
// to a percentile in covariate context.
type PopulationSummary struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	N    int     `json:"n"`
}

// Summarize computes the population summary.
func Summarize(population []float64) (PopulationSummary, error) {
	if len(population) == 0 {
		return PopulationSummary{}, core.NewEmptyPopulationError("population summary")
	}
	mean, err := stats.Mean(population)
	if err != nil {
		return PopulationSummary{}, err
	}
	min, err := stats.Min(population)
	if err != nil {
		return PopulationSummary{}, err
	}
	max, err := stats.Max(population)
	if err != nil {
		return PopulationSummary{}, err
	}
	return PopulationSummary{Mean: mean, Min: min, Max: max, N: len(population)}, nil
}
