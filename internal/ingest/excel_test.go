package ingest

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(DefaultSheet); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "journeys.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExcelSource_Load(t *testing.T) {
	event := time.Date(2024, 4, 3, 10, 30, 0, 0, time.UTC)
	path := writeWorkbook(t, [][]interface{}{
		{"Journey Event Sample"},
		{"Journey ID", nil, "Latitude", "Longitude", "GPS Date Time"},
		{"007", nil, 51.5, -0.12, event},
		{"J2", nil, 52.1, 1.5, event},
	})

	res, err := NewLoader(NewReader()).Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if res.HeaderRow != 1 {
		t.Errorf("HeaderRow = %d; want 1", res.HeaderRow)
	}
	want := []string{"Journey ID", "Latitude", "Longitude", "GPS Date Time"}
	if diff := cmp.Diff(want, res.Table.Names()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}

	id, _ := res.Table.Column("Journey ID")
	if v := id.Values[0]; !v.IsText() || v.Str() != "007" {
		t.Errorf("Journey ID[0] = %v (%s); want text 007", v, v.Kind())
	}

	lat, _ := res.Table.Column("Latitude")
	if v := lat.Values[0]; !v.IsNumber() || v.Float() != 51.5 {
		t.Errorf("Latitude[0] = %v (%s); want number 51.5", v, v.Kind())
	}

	gps, _ := res.Table.Column("GPS Date Time")
	v := gps.Values[0]
	if !v.IsTime() {
		t.Fatalf("GPS Date Time[0] = %v (%s); want time", v, v.Kind())
	}
	got := v.Timestamp()
	if got.Year() != 2024 || got.Month() != time.April || got.Day() != 3 || got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("GPS Date Time[0] = %v; want %v", got, event)
	}
}

func TestExcelSource_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"a"}})

	if _, err := (ExcelSource{}).Rows(path, "No Such Sheet"); err == nil {
		t.Error("Rows() expected error for missing sheet")
	}
}

func TestSheetNames(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"a"}})

	names, err := SheetNames(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(names, DefaultSheet) {
		t.Errorf("SheetNames() = %v; want to contain %q", names, DefaultSheet)
	}
}

func TestNewReader_UnsupportedExtension(t *testing.T) {
	if _, err := NewReader().ReadGrid("journeys.pdf", DefaultSheet, ReadOptions{}); err == nil {
		t.Error("ReadGrid() expected error for .pdf")
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"dd/mm/yyyy hh:mm", true},
		{"yyyy-mm-dd", true},
		{"h:mm AM/PM", true},
		{"0.00", false},
		{"#,##0", false},
		{`"Day "0`, false},
		{"[Red]0.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := isDateFormatCode(tt.code); got != tt.expected {
				t.Errorf("isDateFormatCode(%q) = %v; want %v", tt.code, got, tt.expected)
			}
		})
	}
}
