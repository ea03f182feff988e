package memory

import (
	"fmt"
	"math"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/ports"
)

// Repository is the in-memory implementation of ports.ReferenceRepository.
// Every row is validated once here, at the boundary, so the analytical core
// never re-checks table contents. All reads are lock-free: the tables are
// immutable after construction, which makes the repository safe for
// concurrent use.
type Repository struct {
	horizonStart core.MonthID
	horizonEnd   core.MonthID

	units  map[unitMonth]forecast.Unit
	months map[core.MonthID][]forecast.Unit // load order preserved

	history map[core.UnitID]map[core.MonthID]float64

	covariates map[core.UnitID]map[string]float64
	covOrder   []core.UnitID // covariate row order, for stable columns
}

type unitMonth struct {
	unit  core.UnitID
	month core.MonthID
}

// NewRepository validates and materializes the reference tables. The horizon
// declares the month range historical series are gap-filled over; historical
// rows outside it are dropped. covariateRows may be nil.
func NewRepository(horizonStart, horizonEnd core.MonthID, forecastRows []ports.ForecastRow, historicalRows []ports.HistoricalRow, covariateRows []ports.CovariateRow) (*Repository, error) {
	if horizonEnd < horizonStart {
		return nil, fmt.Errorf("%w: end %d precedes start %d", core.ErrHorizonInvalid, horizonEnd, horizonStart)
	}

	r := &Repository{
		horizonStart: horizonStart,
		horizonEnd:   horizonEnd,
		units:        make(map[unitMonth]forecast.Unit, len(forecastRows)),
		months:       make(map[core.MonthID][]forecast.Unit),
		history:      make(map[core.UnitID]map[core.MonthID]float64),
		covariates:   make(map[core.UnitID]map[string]float64),
	}

	for i, row := range forecastRows {
		if row.UnitID == "" {
			return nil, core.NewSchemaError("forecast", i, "empty unit id")
		}
		if !finite(row.Probability) || row.Probability < 0 || row.Probability > 1 {
			return nil, core.NewSchemaError("forecast", i, fmt.Sprintf("probability %v outside [0,1]", row.Probability))
		}
		if !finite(row.Predicted) || row.Predicted < 0 {
			return nil, core.NewSchemaError("forecast", i, fmt.Sprintf("negative predicted intensity %v", row.Predicted))
		}
		key := unitMonth{core.UnitID(row.UnitID), core.MonthID(row.TemporalID)}
		if _, dup := r.units[key]; dup {
			return nil, fmt.Errorf("%w: forecast row %d: unit %s month %d", core.ErrDuplicateRow, i, row.UnitID, row.TemporalID)
		}
		u := forecast.Unit{
			UnitID:             key.unit,
			CountryCode:        row.CountryCode,
			TemporalID:         key.month,
			Probability:        row.Probability,
			PredictedIntensity: row.Predicted,
		}
		r.units[key] = u
		r.months[key.month] = append(r.months[key.month], u)
	}

	for i, row := range historicalRows {
		if row.UnitID == "" {
			return nil, core.NewSchemaError("historical", i, "empty unit id")
		}
		if !finite(row.Fatalities) || row.Fatalities < 0 {
			return nil, core.NewSchemaError("historical", i, fmt.Sprintf("negative fatality count %v", row.Fatalities))
		}
		month := core.MonthID(row.TemporalID)
		if month < horizonStart || month > horizonEnd {
			continue
		}
		id := core.UnitID(row.UnitID)
		if r.history[id] == nil {
			r.history[id] = make(map[core.MonthID]float64)
		}
		// Multiple rows per unit-month sum, matching the source tables where
		// one month may carry several event records.
		r.history[id][month] += row.Fatalities
	}

	for i, row := range covariateRows {
		if row.UnitID == "" {
			return nil, core.NewSchemaError("covariate", i, "empty unit id")
		}
		id := core.UnitID(row.UnitID)
		if _, dup := r.covariates[id]; dup {
			return nil, fmt.Errorf("%w: covariate row %d: unit %s", core.ErrDuplicateRow, i, row.UnitID)
		}
		values := make(map[string]float64, len(row.Values))
		for name, v := range row.Values {
			if math.IsNaN(v) {
				continue // missing value
			}
			if math.IsInf(v, 0) {
				return nil, core.NewSchemaError("covariate", i, fmt.Sprintf("non-finite %s", name))
			}
			values[name] = v
		}
		r.covariates[id] = values
		r.covOrder = append(r.covOrder, id)
	}

	return r, nil
}

// Horizon returns the declared historical month range.
func (r *Repository) Horizon() (core.MonthID, core.MonthID) {
	return r.horizonStart, r.horizonEnd
}

func (r *Repository) ForecastUnit(unitID core.UnitID, temporalID core.MonthID) (forecast.Unit, bool) {
	u, ok := r.units[unitMonth{unitID, temporalID}]
	return u, ok
}

func (r *Repository) MonthPopulation(temporalID core.MonthID) []forecast.Unit {
	pop := r.months[temporalID]
	out := make([]forecast.Unit, len(pop))
	copy(out, pop)
	return out
}

func (r *Repository) HistoricalSeries(unitID core.UnitID) forecast.HistoricalSeries {
	series := forecast.HistoricalSeries{UnitID: unitID}
	byMonth, ok := r.history[unitID]
	if !ok {
		return series
	}
	for m := r.horizonStart; m <= r.horizonEnd; m++ {
		series.Points = append(series.Points, forecast.SeriesPoint{
			TemporalID: m,
			Fatalities: byMonth[m], // zero for gap months
		})
	}
	return series
}

func (r *Repository) Covariates(unitID core.UnitID) (map[string]float64, bool) {
	values, ok := r.covariates[unitID]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out, true
}

func (r *Repository) CovariateColumn(name string) []float64 {
	var out []float64
	for _, id := range r.covOrder {
		if v, ok := r.covariates[id][name]; ok {
			out = append(out, v)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var _ ports.ReferenceRepository = (*Repository)(nil)
