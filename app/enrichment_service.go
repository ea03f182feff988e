package app

import (
	"fmt"

	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/domain/forecast"
	"github.com/patterson-s/fast/internal/analysis"
	"github.com/patterson-s/fast/internal/spatial"
	"github.com/patterson-s/fast/ports"
)

// EnrichmentService turns a raw forecast value into a classified, ranked, and
// contextualized record: the shared analytical step behind every report
// generator. Each call is a pure function of the repository contents and is
// safe to run concurrently; batch throughput belongs to the caller.
type EnrichmentService struct {
	repo     ports.ReferenceRepository
	resolver *spatial.AdjacencyResolver // nil for country-level runs

	cohortSize       int
	trendPolicy      analysis.TrendPolicy
	comparePolicy    analysis.ComparePolicy
	covariateColumns []string
}

// EnrichmentOptions tune the service for a report context.
type EnrichmentOptions struct {
	// Topology enables adjacency resolution for grid units. Nil for
	// country-level reports.
	Topology ports.Topology

	// CohortSize overrides the default peer-group size of 3.
	CohortSize int

	// TrendPolicy and ComparePolicy select the narrative bands. Defaults are
	// the country-month policies.
	TrendPolicy   analysis.TrendPolicy
	ComparePolicy analysis.ComparePolicy

	// CovariateColumns names the covariate table columns to compute
	// percentile context for, when the table is loaded.
	CovariateColumns []string
}

// NewEnrichmentService creates an enrichment service over a reference
// repository.
func NewEnrichmentService(repo ports.ReferenceRepository, opts EnrichmentOptions) *EnrichmentService {
	s := &EnrichmentService{
		repo:             repo,
		cohortSize:       opts.CohortSize,
		trendPolicy:      opts.TrendPolicy,
		comparePolicy:    opts.ComparePolicy,
		covariateColumns: opts.CovariateColumns,
	}
	if s.cohortSize <= 0 {
		s.cohortSize = analysis.DefaultCohortSize
	}
	if s.trendPolicy.Name == "" {
		s.trendPolicy = analysis.TrendPolicyCountryMonth
	}
	if s.comparePolicy.Name == "" {
		s.comparePolicy = analysis.CompareCountryMonth
	}
	if opts.Topology != nil {
		s.resolver = spatial.NewAdjacencyResolver(opts.Topology)
	}
	return s
}

// Enrich assembles the enriched record for one unit at one month. A unit with
// no forecast row returns a record with Found=false, not an error: missing
// months are an expected steady-state condition. Errors indicate contract
// violations or data defects that must surface during validation.
func (s *EnrichmentService) Enrich(unitID core.UnitID, temporalID core.MonthID) (forecast.EnrichedRecord, error) {
	record := forecast.EnrichedRecord{
		RecordID:    core.NewRecordID(),
		GeneratedAt: core.Now(),
	}

	unit, found := s.repo.ForecastUnit(unitID, temporalID)
	if !found {
		record.Unit = forecast.Unit{UnitID: unitID, TemporalID: temporalID}
		return record, nil
	}
	record.Unit = unit
	record.Found = true

	pair, err := forecast.Classify(unit)
	if err != nil {
		return record, fmt.Errorf("classify %s: %w", unitID, err)
	}
	record.Risk = pair.Risk
	record.Intensity = pair.Intensity

	population := s.repo.MonthPopulation(temporalID)

	probs := make([]float64, len(population))
	intensities := make([]float64, len(population))
	for i, u := range population {
		probs[i] = u.Probability
		intensities[i] = u.PredictedIntensity
	}
	if record.ProbabilityPercentile, err = analysis.Percentile(unit.Probability, probs); err != nil {
		return record, err
	}
	if record.IntensityPercentile, err = analysis.Percentile(unit.PredictedIntensity, intensities); err != nil {
		return record, err
	}

	record.CountryRank = analysis.RankWithin(unitID, analysis.PartitionByCountry(population, unit.CountryCode))

	bucket, err := analysis.PartitionByIntensityBucket(population, pair.Intensity)
	if err != nil {
		return record, err
	}
	record.GlobalBucketRank = analysis.RankWithin(unitID, bucket)

	if record.Cohort, err = analysis.MatchCohort(unit, population, s.cohortSize); err != nil {
		return record, err
	}

	if s.resolver != nil {
		if err := s.enrichSpatial(&record, population); err != nil {
			return record, err
		}
	}

	series := s.repo.HistoricalSeries(unitID)
	record.Trend = analysis.SummarizeTrend(series, s.trendPolicy)
	record.ForecastVsHistorical = analysis.CompareForecast(unit.PredictedIntensity, record.Trend.Average, s.comparePolicy)

	if len(s.covariateColumns) > 0 {
		if err := s.enrichCovariates(&record); err != nil {
			return record, err
		}
	}

	return record, nil
}

func (s *EnrichmentService) enrichSpatial(record *forecast.EnrichedRecord, population []forecast.Unit) error {
	adj, err := s.resolver.Neighbors(record.Unit.UnitID)
	if err != nil {
		return err
	}
	if len(adj) == 0 {
		return nil
	}
	record.Adjacency = adj

	byID := make(map[core.UnitID]forecast.Unit, len(population))
	for _, u := range population {
		byID[u.UnitID] = u
	}
	var values []float64
	for _, nb := range adj {
		if u, ok := byID[nb.UnitID]; ok {
			values = append(values, u.PredictedIntensity)
		}
	}
	ctx := spatial.NeighborContext(record.Unit.PredictedIntensity, values)
	record.NeighborContext = &ctx
	return nil
}

func (s *EnrichmentService) enrichCovariates(record *forecast.EnrichedRecord) error {
	values, ok := s.repo.Covariates(record.Unit.UnitID)
	if !ok {
		return nil
	}
	for _, col := range s.covariateColumns {
		v, present := values[col]
		if !present {
			continue
		}
		column := s.repo.CovariateColumn(col)
		pct, err := analysis.Percentile(v, column)
		if err != nil {
			return fmt.Errorf("covariate %s: %w", col, err)
		}
		summary, err := analysis.Summarize(column)
		if err != nil {
			return fmt.Errorf("covariate %s: %w", col, err)
		}
		if record.Covariates == nil {
			record.Covariates = make(map[string]forecast.CovariateContext)
		}
		record.Covariates[col] = forecast.CovariateContext{
			Value:          v,
			Percentile:     pct,
			PopulationMean: summary.Mean,
			PopulationMin:  summary.Min,
			PopulationMax:  summary.Max,
			PopulationN:    summary.N,
		}
	}
	return nil
}
