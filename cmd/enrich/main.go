package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/patterson-s/fast/adapters/excel"
	"github.com/patterson-s/fast/adapters/memory"
	"github.com/patterson-s/fast/adapters/postgres"
	"github.com/patterson-s/fast/app"
	"github.com/patterson-s/fast/domain/core"
	"github.com/patterson-s/fast/internal"
	"github.com/patterson-s/fast/internal/analysis"
	"github.com/patterson-s/fast/internal/config"
	"github.com/patterson-s/fast/ports"
)

// enrich loads the reference tables, runs the enrichment core for one unit
// and month, and prints the record as JSON. The report and narrative layers
// consume the same record through the app package directly.
func main() {
	unitID := flag.String("unit", "", "unit id (country code or grid id)")
	monthID := flag.Int("month", 0, "month index (1 = January 1980)")
	flag.Parse()

	if *unitID == "" || *monthID == 0 {
		fmt.Fprintln(os.Stderr, "usage: enrich -unit NGA -month 561")
		os.Exit(2)
	}

	if err := run(core.UnitID(*unitID), core.MonthID(*monthID)); err != nil {
		internal.DefaultLogger.Error("enrich failed: %v", err)
		os.Exit(1)
	}
}

func run(unitID core.UnitID, monthID core.MonthID) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	forecastRows, historicalRows, covariateRows, err := loadTables(cfg)
	if err != nil {
		return err
	}

	repo, err := memory.NewRepository(
		core.MonthID(cfg.Horizon.StartMonthID),
		core.MonthID(cfg.Horizon.EndMonthID),
		forecastRows, historicalRows, covariateRows,
	)
	if err != nil {
		return err
	}

	service := app.NewEnrichmentService(repo, app.EnrichmentOptions{
		CohortSize:    cfg.Cohort.TargetSize,
		TrendPolicy:   analysis.TrendPolicyCountryMonth,
		ComparePolicy: analysis.CompareCountryMonth,
	})

	record, err := service.Enrich(unitID, monthID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func loadTables(cfg *config.Config) ([]ports.ForecastRow, []ports.HistoricalRow, []ports.CovariateRow, error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, nil, err
		}
		defer db.Close()

		ctx := context.Background()
		loader := postgres.NewLoader(db)
		forecastRows, err := loader.LoadForecastRows(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		historicalRows, err := loader.LoadHistoricalRows(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		covariateRows, err := loader.LoadCovariateRows(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		return forecastRows, historicalRows, covariateRows, nil
	}

	historicalRows, err := excel.NewReader(cfg.Paths.HistoricalFile).LoadHistoricalRows()
	if err != nil {
		return nil, nil, nil, err
	}
	var forecastRows []ports.ForecastRow
	if cfg.Paths.ForecastFile != "" {
		forecastRows, err = excel.NewReader(cfg.Paths.ForecastFile).LoadForecastRows()
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return forecastRows, historicalRows, nil, nil
}
