package excel

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/patterson-s/fast/internal"
	apperrors "github.com/patterson-s/fast/internal/errors"
	"github.com/patterson-s/fast/ports"
)

// Reader loads reference tables from xlsx workbooks. It only parses rows;
// range and duplicate validation lives in the memory repository, so it stays
// in one place.
type Reader struct {
	filePath string
	logger   *internal.Logger
}

// NewReader creates a workbook reader.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath, logger: internal.DefaultLogger}
}

// LoadHistoricalRows reads the historical violence table. The sheet needs a
// unit id column ("unit_id" or "isoab"), a fatality column ("fatalities" or
// "ged_sb"), and either a "month_id" column or "year"+"month" columns.
func (r *Reader) LoadHistoricalRows() ([]ports.HistoricalRow, error) {
	rows, err := r.readSheet()
	if err != nil {
		return nil, err
	}

	header := headerIndex(rows[0])
	unitCol, ok := pick(header, "unit_id", "isoab", "priogrid_gid")
	if !ok {
		return nil, apperrors.SchemaInvalid("historical sheet is missing a unit id column")
	}
	fatalCol, ok := pick(header, "fatalities", "ged_sb", "total_fatalities")
	if !ok {
		return nil, apperrors.SchemaInvalid("historical sheet is missing a fatality column")
	}
	monthCol, hasMonthID := pick(header, "month_id", "temporal_id")
	yearCol, hasYear := pick(header, "year")
	calMonthCol, hasCalMonth := pick(header, "month")
	if !hasMonthID && !(hasYear && hasCalMonth) {
		return nil, apperrors.SchemaInvalid("historical sheet needs month_id or year+month columns")
	}

	out := make([]ports.HistoricalRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fatalities, err := cellFloatOrZero(row, fatalCol)
		if err != nil {
			return nil, apperrors.Wrapf(err, "historical row %d", i+2)
		}
		var temporalID int
		if hasMonthID {
			temporalID, err = cellInt(row, monthCol)
		} else {
			var year, month int
			if year, err = cellInt(row, yearCol); err == nil {
				if month, err = cellInt(row, calMonthCol); err == nil {
					temporalID = (year-1980)*12 + month
				}
			}
		}
		if err != nil {
			return nil, apperrors.Wrapf(err, "historical row %d", i+2)
		}
		out = append(out, ports.HistoricalRow{
			UnitID:     cell(row, unitCol),
			TemporalID: temporalID,
			Fatalities: fatalities,
		})
	}

	r.logger.Info("[excel] loaded %d historical rows from %s", len(out), r.filePath)
	return out, nil
}

// LoadForecastRows reads the forecast table. The sheet needs unit id, country
// code ("country_code" or "isoab"), month ("month_id"), probability
// ("probability" or "outcome_p"), and predicted intensity ("predicted" or
// "outcome_n") columns.
func (r *Reader) LoadForecastRows() ([]ports.ForecastRow, error) {
	rows, err := r.readSheet()
	if err != nil {
		return nil, err
	}

	header := headerIndex(rows[0])
	unitCol, ok := pick(header, "unit_id", "priogrid_gid", "isoab")
	if !ok {
		return nil, apperrors.SchemaInvalid("forecast sheet is missing a unit id column")
	}
	countryCol, hasCountry := pick(header, "country_code", "isoab")
	if !hasCountry {
		countryCol = -1 // grid sheets carry country in the topology instead
	}
	monthCol, ok := pick(header, "month_id", "temporal_id")
	if !ok {
		return nil, apperrors.SchemaInvalid("forecast sheet is missing a month_id column")
	}
	probCol, ok := pick(header, "probability", "outcome_p")
	if !ok {
		return nil, apperrors.SchemaInvalid("forecast sheet is missing a probability column")
	}
	predCol, ok := pick(header, "predicted", "outcome_n")
	if !ok {
		return nil, apperrors.SchemaInvalid("forecast sheet is missing a predicted intensity column")
	}

	out := make([]ports.ForecastRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		temporalID, err := cellInt(row, monthCol)
		if err != nil {
			return nil, apperrors.Wrapf(err, "forecast row %d", i+2)
		}
		prob, err := cellFloat(row, probCol)
		if err != nil {
			return nil, apperrors.Wrapf(err, "forecast row %d", i+2)
		}
		pred, err := cellFloat(row, predCol)
		if err != nil {
			return nil, apperrors.Wrapf(err, "forecast row %d", i+2)
		}
		out = append(out, ports.ForecastRow{
			UnitID:      cell(row, unitCol),
			CountryCode: cell(row, countryCol),
			TemporalID:  temporalID,
			Probability: prob,
			Predicted:   pred,
		})
	}

	r.logger.Info("[excel] loaded %d forecast rows from %s", len(out), r.filePath)
	return out, nil
}

// LoadCovariateRows reads the covariate table: a unit id column plus any
// number of named numeric columns. Blank cells are missing values.
func (r *Reader) LoadCovariateRows() ([]ports.CovariateRow, error) {
	rows, err := r.readSheet()
	if err != nil {
		return nil, err
	}

	header := headerIndex(rows[0])
	unitCol, ok := pick(header, "unit_id", "isoab", "isoab.x")
	if !ok {
		return nil, apperrors.SchemaInvalid("covariate sheet is missing a unit id column")
	}

	out := make([]ports.CovariateRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cov := ports.CovariateRow{
			UnitID: cell(row, unitCol),
			Values: make(map[string]float64),
		}
		for name, col := range header {
			if col == unitCol {
				continue
			}
			raw := cell(row, col)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue // non-numeric column
			}
			cov.Values[name] = v
		}
		out = append(out, cov)
	}

	r.logger.Info("[excel] loaded %d covariate rows from %s", len(out), r.filePath)
	return out, nil
}

func (r *Reader) readSheet() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.FileError(fmt.Sprintf("workbook not found: %s", r.filePath), err)
	}

	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.FileError("failed to open workbook", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.FileError(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	if len(rows) < 2 {
		return nil, apperrors.SchemaInvalid("workbook must have a header row and at least one data row")
	}

	r.logger.Debug("[excel] %s read in %.2fms (%d rows)", sheet,
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(header map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if col, ok := header[n]; ok {
			return col, true
		}
	}
	return 0, false
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellFloat(row []string, col int) (float64, error) {
	raw := cell(row, col)
	if raw == "" {
		return 0, fmt.Errorf("missing numeric cell")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as number", raw)
	}
	return v, nil
}

// cellFloatOrZero treats a blank cell as zero. Only the fatality column wants
// this: a blank month means no recorded violence, while a blank probability or
// predicted intensity is a malformed row.
func cellFloatOrZero(row []string, col int) (float64, error) {
	if cell(row, col) == "" {
		return 0, nil
	}
	return cellFloat(row, col)
}

func cellInt(row []string, col int) (int, error) {
	raw := cell(row, col)
	if raw == "" {
		return 0, fmt.Errorf("missing integer cell")
	}
	// Excel often round-trips integers as floats ("561.0")
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as integer", raw)
	}
	return int(f), nil
}
