package ingest

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/nconklindev/journeyload/internal/types"
)

// CSVSource reads comma-delimited files. The sheet name is ignored; cells that
// parse as numbers become numbers, everything else stays text.
type CSVSource struct{}

func (CSVSource) Rows(source, _ string) (types.Grid, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	grid := make(types.Grid, len(records))
	for i, record := range records {
		row := make([]types.Value, len(record))
		for j, cell := range record {
			row[j] = parseCSVCell(cell)
		}
		grid[i] = row
	}
	return grid, nil
}

func parseCSVCell(cell string) types.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return types.Missing()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return types.Number(f)
	}
	return types.Text(cell)
}
