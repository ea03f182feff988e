package excel

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a one-sheet xlsx fixture. A nil cell stays blank.
func writeWorkbook(t *testing.T, rows ...[]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestLoadForecastRows(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"unit_id", "country_code", "month_id", "probability", "predicted"},
		[]interface{}{"NGA", "NGA", 561, 0.8, 50},
		[]interface{}{"NER", "NER", 561, 0.2, 5},
	)

	rows, err := NewReader(path).LoadForecastRows()
	if err != nil {
		t.Fatalf("LoadForecastRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("loaded %d rows, want 2", len(rows))
	}
	if rows[0].UnitID != "NGA" || rows[0].TemporalID != 561 || rows[0].Probability != 0.8 || rows[0].Predicted != 50 {
		t.Errorf("row 0 = %+v", rows[0])
	}
}

// A blank probability or predicted cell must not load as a real zero
// forecast; the row is malformed and the load fails.
func TestLoadForecastRows_RejectsBlankNumericCells(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"unit_id", "country_code", "month_id", "probability", "predicted"},
		[]interface{}{"NGA", "NGA", 561, nil, 50},
	)
	if _, err := NewReader(path).LoadForecastRows(); err == nil {
		t.Error("blank probability cell should fail the load")
	}

	path = writeWorkbook(t,
		[]interface{}{"unit_id", "country_code", "month_id", "probability", "predicted"},
		[]interface{}{"NGA", "NGA", 561, 0.8, nil},
	)
	if _, err := NewReader(path).LoadForecastRows(); err == nil {
		t.Error("blank predicted cell should fail the load")
	}
}

func TestLoadHistoricalRows(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"unit_id", "month_id", "fatalities"},
		[]interface{}{"NGA", 502, 7},
		[]interface{}{"NGA", 503, nil}, // blank = no recorded violence
	)

	rows, err := NewReader(path).LoadHistoricalRows()
	if err != nil {
		t.Fatalf("LoadHistoricalRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("loaded %d rows, want 2", len(rows))
	}
	if rows[0].Fatalities != 7 {
		t.Errorf("row 0 fatalities = %v, want 7", rows[0].Fatalities)
	}
	if rows[1].Fatalities != 0 {
		t.Errorf("blank fatality cell = %v, want 0", rows[1].Fatalities)
	}
}

func TestLoadHistoricalRows_YearMonthColumns(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"isoab", "year", "month", "ged_sb"},
		[]interface{}{"NGA", 2026, 9, 12},
	)

	rows, err := NewReader(path).LoadHistoricalRows()
	if err != nil {
		t.Fatalf("LoadHistoricalRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("loaded %d rows, want 1", len(rows))
	}
	if rows[0].TemporalID != (2026-1980)*12+9 {
		t.Errorf("temporal id = %d, want %d", rows[0].TemporalID, (2026-1980)*12+9)
	}
}

func TestLoadHistoricalRows_MissingColumns(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"unit_id", "month_id"},
		[]interface{}{"NGA", 502},
	)
	if _, err := NewReader(path).LoadHistoricalRows(); err == nil {
		t.Error("sheet without a fatality column should fail the load")
	}
}
