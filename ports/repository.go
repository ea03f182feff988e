package ports

import (
	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
)

// ReferenceRepository provides read-only access to the materialized reference
// tables for a time slice. Implementations validate rows once at construction;
// the analytical core never sees a malformed row and never performs I/O.
// All methods must be safe for concurrent use.
type ReferenceRepository interface {
	// ForecastUnit returns the unit's forecast row at a month. The second
	// return is false when the unit has no row - an expected condition.
	ForecastUnit(unitID core.UnitID, temporalID core.MonthID) (forecast.Unit, bool)

	// MonthPopulation returns every forecast row at a month, in table order.
	// Table order is load-bearing: cohort selection and rank tie-breaks are
	// defined against it.
	MonthPopulation(temporalID core.MonthID) []forecast.Unit

	// HistoricalSeries returns the unit's fatality record over the declared
	// horizon, gap-filled with zeros. A unit with no recorded history returns
	// an empty series, not an error.
	HistoricalSeries(unitID core.UnitID) forecast.HistoricalSeries

	// Covariates returns the unit's covariate row, if the covariate table is
	// loaded and the unit appears in it.
	Covariates(unitID core.UnitID) (map[string]float64, bool)

	// CovariateColumn returns all non-missing values of a named covariate
	// column, for percentile context.
	CovariateColumn(name string) []float64
}

// Raw table rows, as handed from loaders to the validating repository.
// Types, not source column names, matter here.

// ForecastRow is one row of the forecast table.
type ForecastRow struct {
	UnitID      string  `db:"unit_id"`
	CountryCode string  `db:"country_code"`
	TemporalID  int     `db:"temporal_id"`
	Probability float64 `db:"probability"`
	Predicted   float64 `db:"predicted"`
}

// HistoricalRow is one row of the historical violence table.
type HistoricalRow struct {
	UnitID     string  `db:"unit_id"`
	TemporalID int     `db:"temporal_id"`
	Fatalities float64 `db:"fatalities"`
}

// CovariateRow is one row of the optional covariate table.
type CovariateRow struct {
	UnitID string
	Values map[string]float64
}
