package forecast

import (
	"github.com/patterson-s/fast/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Unit is one forecast observation: a country or grid cell at a single month.
// Immutable once read from the repository.
type Unit struct {
	UnitID             core.UnitID  `json:"unit_id"`
	CountryCode        string       `json:"country_code"`
	TemporalID         core.MonthID `json:"temporal_id"`
	Probability        float64      `json:"probability"`         // P(conflict), 0.0 to 1.0
	PredictedIntensity float64      `json:"predicted_intensity"` // expected fatalities, >= 0
}

// RiskCategory is the ordinal conflict-probability band.
// The four bands partition [0,1] with no gap or overlap.
type RiskCategory string

const (
	RiskNearCertainNoConflict RiskCategory = "Near-certain no conflict" // p <= 0.01
	RiskImprobableConflict    RiskCategory = "Improbable conflict"      // 0.01 < p <= 0.50
	RiskProbableConflict      RiskCategory = "Probable conflict"        // 0.50 < p <= 0.99
	RiskNearCertainConflict   RiskCategory = "Near-certain conflict"    // p > 0.99
)

// IntensityCategory is the ordinal predicted-fatalities band.
// Labels match the bands printed in the reports.
type IntensityCategory string

const (
	IntensityZero         IntensityCategory = "0"
	IntensityLow          IntensityCategory = "1-10"
	IntensityModerate     IntensityCategory = "11-100"
	IntensityHigh         IntensityCategory = "101-1,000"
	IntensityVeryHigh     IntensityCategory = "1,001-10,000"
	IntensityCatastrophic IntensityCategory = "10,001+"
)

// CategoryPair is the (risk, intensity) key cohorts are grouped by.
type CategoryPair struct {
	Risk      RiskCategory      `json:"risk"`
	Intensity IntensityCategory `json:"intensity"`
}

// HistoricalSeries is the ordered fatality record for one unit. The repository
// guarantees uniform length across its declared horizon: months with no
// recorded violence appear as explicit zero points, never as gaps.
type HistoricalSeries struct {
	UnitID core.UnitID   `json:"unit_id"`
	Points []SeriesPoint `json:"points"`
}

// SeriesPoint is one month of recorded fatalities.
type SeriesPoint struct {
	TemporalID core.MonthID `json:"temporal_id"`
	Fatalities float64      `json:"fatalities"`
}

// Values returns the fatality counts in temporal order.
func (s HistoricalSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Fatalities
	}
	return out
}

// Len returns the number of points in the series.
func (s HistoricalSeries) Len() int { return len(s.Points) }

// ============================================================================
// SPATIAL TYPES
// ============================================================================

// Compass labels the geographic position of a neighbor relative to the focal
// grid cell.
type Compass string

const (
	North     Compass = "N"
	NorthEast Compass = "NE"
	East      Compass = "E"
	SouthEast Compass = "SE"
	South     Compass = "S"
	SouthWest Compass = "SW"
	West      Compass = "W"
	NorthWest Compass = "NW"
)

// AllCompass lists the eight compass positions in clockwise order from north.
var AllCompass = []Compass{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Neighbor is one resolved adjacency edge.
type Neighbor struct {
	UnitID      core.UnitID `json:"unit_id"`
	CountryCode string      `json:"country_code"`
	CrossBorder bool        `json:"cross_border"` // true iff country differs from focal
}

// Adjacency maps compass positions to neighbors. Positions absent from the map
// sit at region or data boundaries. At most 8 entries; the same neighbor never
// appears twice.
type Adjacency map[Compass]Neighbor

// CrossBorderCount returns the number of neighbors in a different country.
func (a Adjacency) CrossBorderCount() int {
	n := 0
	for _, nb := range a {
		if nb.CrossBorder {
			n++
		}
	}
	return n
}

// ============================================================================
// RESULT AGGREGATES
// ============================================================================

// MatchMode records whether a cohort was filled from the natural category pair
// alone or extended by nearest-intensity backfill. Callers use it to choose
// phrasing ("most similar" vs "generally similar").
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchFallback MatchMode = "fallback"
)

// CohortResult is an ordered peer group for one unit.
type CohortResult struct {
	Members []Unit    `json:"members"`
	Mode    MatchMode `json:"mode"`
}

// RankResult places a unit within a named partition by predicted intensity,
// descending. The zero value is the "unranked" sentinel returned when the unit
// is absent from its partition - an expected condition, not an error.
type RankResult struct {
	Rank   int `json:"rank"`   // 1-based; 0 when unranked
	Total  int `json:"total"`  // partition size
	Higher int `json:"higher"` // units ranked above
	Lower  int `json:"lower"`  // units ranked below
}

// IsRanked reports whether the unit was found in its partition.
func (r RankResult) IsRanked() bool { return r.Rank > 0 }

// TrendSummary describes a unit's historical fatality record.
type TrendSummary struct {
	Average    float64 `json:"average"`
	Slope      float64 `json:"slope"`       // OLS slope, fatalities per month
	Sufficient bool    `json:"sufficient"`  // false when fewer than 3 points
	LevelLabel string  `json:"level_label"` // minimal | low | moderate | high
	TrendLabel string  `json:"trend_label"` // stable | increasing | decreasing
}

// NeighborContext summarizes the focal cell's forecast against its neighbors.
type NeighborContext struct {
	Average    float64 `json:"average"`
	Max        float64 `json:"max"`
	Comparison string  `json:"comparison"`
}

// CovariateContext is a unit's value and percentile for one covariate column,
// with the reference-population statistics printed alongside.
type CovariateContext struct {
	Value          float64 `json:"value"`
	Percentile     float64 `json:"percentile"`
	PopulationMean float64 `json:"population_mean"`
	PopulationMin  float64 `json:"population_min"`
	PopulationMax  float64 `json:"population_max"`
	PopulationN    int     `json:"population_n"`
}

// EnrichedRecord is the assembled output handed to the report and narrative
// layers. Created on demand per query; serialization is the caller's concern.
type EnrichedRecord struct {
	RecordID    core.RecordID  `json:"record_id"`
	GeneratedAt core.Timestamp `json:"generated_at"`

	Unit  Unit `json:"unit"`
	Found bool `json:"found"` // false when the unit had no forecast row

	Risk      RiskCategory      `json:"risk_category,omitempty"`
	Intensity IntensityCategory `json:"intensity_category,omitempty"`

	ProbabilityPercentile float64 `json:"probability_percentile"`
	IntensityPercentile   float64 `json:"intensity_percentile"`

	CountryRank      RankResult `json:"country_rank"`
	GlobalBucketRank RankResult `json:"global_bucket_rank"`

	Cohort CohortResult `json:"cohort"`

	Adjacency       Adjacency        `json:"adjacency,omitempty"`
	NeighborContext *NeighborContext `json:"neighbor_context,omitempty"`

	Trend                TrendSummary `json:"trend"`
	ForecastVsHistorical string       `json:"forecast_vs_historical"`

	Covariates map[string]CovariateContext `json:"covariates,omitempty"`
}
