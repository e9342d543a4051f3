package ingest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/journeyload/internal/types"
)

// ArtifactPrefix starts the name given to columns whose header cell is blank.
const ArtifactPrefix = "Unnamed"

// ReadOptions restricts what a Reader materialises.
type ReadOptions struct {
	// RowLimit caps the number of rows returned (data rows when a header is
	// used). Zero means no limit.
	RowLimit int
	Columns  ColumnRange
}

// Reader is the spreadsheet collaborator used by the Loader.
type Reader interface {
	// ReadGrid returns rows with no header assumption.
	ReadGrid(source, sheet string, opts ReadOptions) (types.Grid, error)
	// ReadTable uses row header (0-based) as column names and the rows below it as data.
	ReadTable(source, sheet string, header int, opts ReadOptions) (*types.Table, error)
}

// CellSource produces every row of a sheet as typed cells.
type CellSource interface {
	Rows(source, sheet string) (types.Grid, error)
}

// GridReader implements Reader over any CellSource.
type GridReader struct {
	src CellSource
}

// NewGridReader wraps a CellSource.
func NewGridReader(src CellSource) *GridReader {
	return &GridReader{src: src}
}

// NewReader returns a Reader that picks the cell source from the file extension.
func NewReader() *GridReader {
	return NewGridReader(extensionSource{})
}

type extensionSource struct{}

func (extensionSource) Rows(source, sheet string) (types.Grid, error) {
	ext := strings.ToLower(filepath.Ext(source))

	switch ext {
	case ".xlsx", ".xlsm":
		return ExcelSource{}.Rows(source, sheet)
	case ".csv", ".txt":
		return CSVSource{}.Rows(source, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func (r *GridReader) ReadGrid(source, sheet string, opts ReadOptions) (types.Grid, error) {
	rows, err := r.src.Rows(source, sheet)
	if err != nil {
		return nil, err
	}
	if opts.RowLimit > 0 && len(rows) > opts.RowLimit {
		rows = rows[:opts.RowLimit]
	}
	return selectColumns(rows, opts.Columns), nil
}

func (r *GridReader) ReadTable(source, sheet string, header int, opts ReadOptions) (*types.Table, error) {
	rows, err := r.src.Rows(source, sheet)
	if err != nil {
		return nil, err
	}
	if header < 0 || header >= len(rows) {
		return nil, fmt.Errorf("header row %d out of range: sheet %q has %d rows", header, sheet, len(rows))
	}

	rows = rows[header:]
	if opts.RowLimit > 0 && len(rows) > opts.RowLimit+1 {
		rows = rows[:opts.RowLimit+1]
	}
	rows = selectColumns(rows, opts.Columns)

	names := columnNames(rows[0])
	data := rows[1:]
	cols := make([]types.Column, len(names))
	for j, name := range names {
		values := make([]types.Value, len(data))
		for i, row := range data {
			values[i] = row[j]
		}
		cols[j] = types.Column{Name: name, Values: values, Declared: declaredTag(values)}
	}
	return types.NewTable(cols)
}

// declaredTag is numeric for columns holding only numbers or nothing at all,
// the way a blank spreadsheet column reads as an empty float column.
func declaredTag(values []types.Value) types.TypeTag {
	for _, v := range values {
		if !v.IsMissing() && !v.IsNumber() {
			return ""
		}
	}
	return types.TagNumeric
}

// selectColumns pads the grid to a rectangle and keeps the selected columns.
func selectColumns(rows types.Grid, cr ColumnRange) types.Grid {
	rows = rows.Pad()
	if cr.All() {
		return rows
	}
	idx := cr.Indices(rows.Width())
	out := make(types.Grid, len(rows))
	for i, row := range rows {
		sel := make([]types.Value, len(idx))
		for j, k := range idx {
			sel[j] = row[k]
		}
		out[i] = sel
	}
	return out
}

// columnNames turns a header row into unique column names. Blank cells become
// "Unnamed: <pos>" and repeated names get ".1", ".2", ... suffixes.
func columnNames(header []types.Value) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, v := range header {
		name := strings.TrimSpace(v.String())
		if v.IsMissing() || name == "" {
			name = ArtifactPrefix + ": " + strconv.Itoa(i)
		}
		base := name
		for n := 1; used[name]; n++ {
			name = base + "." + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
