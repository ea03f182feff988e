package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	apperrors "github.com/patterson-s/fast/internal/errors"
	"github.com/patterson-s/fast/ports"
)

// Loader fetches the reference tables from PostgreSQL. Like the workbook
// reader it only fetches rows; validation happens once, in the memory
// repository.
type Loader struct {
	db *sqlx.DB
}

// NewLoader creates a reference-table loader over an open connection.
func NewLoader(db *sqlx.DB) *Loader {
	return &Loader{db: db}
}

// Connect opens and pings a PostgreSQL connection.
func Connect(url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, apperrors.ConfigInvalid("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}
	if err := db.Ping(); err != nil {
		return nil, apperrors.DatabaseError("failed to ping database", err)
	}
	return db, nil
}

// LoadForecastRows fetches the forecast table in stable order. Order matters
// downstream: cohort selection and rank tie-breaks are defined against it.
func (l *Loader) LoadForecastRows(ctx context.Context) ([]ports.ForecastRow, error) {
	query := `SELECT
		unit_id, country_code, temporal_id, probability, predicted
	FROM forecasts
	ORDER BY temporal_id, unit_id`

	var rows []ports.ForecastRow
	if err := l.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.DatabaseError("failed to load forecast table", err)
	}
	return rows, nil
}

// LoadHistoricalRows fetches the historical violence table.
func (l *Loader) LoadHistoricalRows(ctx context.Context) ([]ports.HistoricalRow, error) {
	query := `SELECT
		unit_id, temporal_id, fatalities
	FROM historical_violence
	ORDER BY unit_id, temporal_id`

	var rows []ports.HistoricalRow
	if err := l.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.DatabaseError("failed to load historical table", err)
	}
	return rows, nil
}

// LoadCovariateRows fetches the covariate table. Columns beyond unit_id are
// read dynamically since the covariate set varies by data release; NULLs are
// missing values.
func (l *Loader) LoadCovariateRows(ctx context.Context) ([]ports.CovariateRow, error) {
	rows, err := l.db.QueryxContext(ctx, `SELECT * FROM covariates ORDER BY unit_id`)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load covariate table", err)
	}
	defer rows.Close()

	var out []ports.CovariateRow
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, apperrors.DatabaseError("failed to scan covariate row", err)
		}

		unitID, ok := raw["unit_id"].(string)
		if !ok {
			return nil, apperrors.SchemaInvalid("covariates table is missing a text unit_id column")
		}
		cov := ports.CovariateRow{UnitID: unitID, Values: make(map[string]float64)}
		for name, v := range raw {
			if name == "unit_id" || v == nil {
				continue
			}
			switch n := v.(type) {
			case float64:
				cov.Values[name] = n
			case int64:
				cov.Values[name] = float64(n)
			default:
				return nil, apperrors.SchemaInvalid(fmt.Sprintf("covariate column %s is not numeric", name))
			}
		}
		out = append(out, cov)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to iterate covariate rows", err)
	}
	return out, nil
}
