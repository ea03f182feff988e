package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/patterson-s/fast/domain/forecast"
)

// TrendPolicy names a stable-slope band. Two call sites in the report layer
// use different bands for what is nominally the same computation; both are
// preserved as distinct policies because they drive different narrative text.
type TrendPolicy struct {
	Name       string
	StableBand float64 // |slope| below this reads as "stable"
}

var (
	// TrendPolicyGrid is the fine band used in grid-cell summaries.
	TrendPolicyGrid = TrendPolicy{Name: "grid", StableBand: 1}

	// TrendPolicyCountryMonth is the coarse band used in country-month
	// narratives.
	TrendPolicyCountryMonth = TrendPolicy{Name: "country-month", StableBand: 5}
)

// Trend label values.
const (
	TrendStable     = "stable"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Level label values, bucketing the mean of the most recent 12 points at
// breakpoints 0, 10, 100.
const (
	LevelMinimal  = "minimal"
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// recentWindow is how many trailing points the level label looks at.
const recentWindow = 12

// SummarizeTrend computes a unit's historical average and linear trend. The
// slope is an ordinary least-squares fit of fatalities against sequential
// index, computed only when the series has at least 3 points; shorter series
// report slope 0 and Sufficient=false.
func SummarizeTrend(series forecast.HistoricalSeries, policy TrendPolicy) forecast.TrendSummary {
	values := series.Values()

	summary := forecast.TrendSummary{
		LevelLabel: LevelMinimal,
		TrendLabel: TrendStable,
	}
	if len(values) == 0 {
		return summary
	}

	if mean, err := stats.Mean(values); err == nil {
		summary.Average = mean
	}

	if len(values) >= 3 {
		xs := make([]float64, len(values))
		for i := range xs {
			xs[i] = float64(i)
		}
		_, slope := stat.LinearRegression(xs, values, nil, false)
		summary.Slope = slope
		summary.Sufficient = true
	}

	recent := values
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	recentMean, _ := stats.Mean(recent)
	switch {
	case recentMean > 100:
		summary.LevelLabel = LevelHigh
	case recentMean > 10:
		summary.LevelLabel = LevelModerate
	case recentMean > 0:
		summary.LevelLabel = LevelLow
	default:
		summary.LevelLabel = LevelMinimal
	}

	switch {
	case math.Abs(summary.Slope) < policy.StableBand:
		summary.TrendLabel = TrendStable
	case summary.Slope > 0:
		summary.TrendLabel = TrendIncreasing
	default:
		summary.TrendLabel = TrendDecreasing
	}

	return summary
}

// ComparePolicy names a forecast-vs-history ratio band. As with trend
// policies, country and grid reports use different bands and different
// zero-history handling; both are preserved.
type ComparePolicy struct {
	Name  string
	Upper float64 // ratio above this reads as "higher than"
	Lower float64 // ratio below this reads as "lower than"

	// ZeroForecastConsistent controls the zero-history edge: the grid band
	// calls a zero forecast against zero history "consistent with", the
	// country band calls any forecast against zero history "higher than".
	ZeroForecastConsistent bool
}

var (
	CompareCountryMonth = ComparePolicy{Name: "country-month", Upper: 1.1, Lower: 0.9}
	CompareGrid         = ComparePolicy{Name: "grid", Upper: 1.2, Lower: 0.8, ZeroForecastConsistent: true}
)

// Comparison label values.
const (
	CompareHigher     = "higher than"
	CompareLower      = "lower than"
	CompareConsistent = "consistent with"
)

// CompareForecast relates a predicted intensity to the historical average.
func CompareForecast(predicted, historicalAvg float64, policy ComparePolicy) string {
	if historicalAvg == 0 {
		if policy.ZeroForecastConsistent && predicted == 0 {
			return CompareConsistent
		}
		return CompareHigher
	}
	ratio := predicted / historicalAvg
	switch {
	case ratio > policy.Upper:
		return CompareHigher
	case ratio < policy.Lower:
		return CompareLower
	default:
		return CompareConsistent
	}
}
