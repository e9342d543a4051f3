package ingest

import (
	"fmt"
	"strconv"

	"github.com/nconklindev/journeyload/internal/types"
)

// DefaultSheet is the sheet read when none is named.
const DefaultSheet = "Journey_Event_Sample"

// HeaderSpec selects the header row: automatic detection or a fixed 0-based index.
type HeaderSpec struct {
	auto bool
	row  int
}

// AutoHeader asks the loader to guess the header row.
func AutoHeader() HeaderSpec { return HeaderSpec{auto: true} }

// HeaderRow uses a fixed 0-based header row.
func HeaderRow(row int) HeaderSpec { return HeaderSpec{row: row} }

func (h HeaderSpec) Auto() bool { return h.auto }
func (h HeaderSpec) Row() int { return h.row }

func (h HeaderSpec) String() string {
	if h.auto {
		return "auto"
	}
	return strconv.Itoa(h.row)
}

// Options controls a single Load call.
type Options struct {
	Sheet  string
	Header HeaderSpec
	// Columns is a letter range-spec such as "B:BC"; empty keeps every column.
	Columns string
	// RowLimit caps the number of data rows; zero reads them all.
	RowLimit      int
	DateColumns   []string
	DayFirst      bool
	DropArtifacts bool
	// ScanRows is how many leading rows header detection scores.
	ScanRows int
}

// DefaultOptions returns the options used for Journey Event sheets.
func DefaultOptions() Options {
	return Options{
		Sheet:         DefaultSheet,
		Header:        AutoHeader(),
		DayFirst:      true,
		DropArtifacts: true,
		ScanRows:      DefaultScanRows,
	}
}

// Result is a loaded table plus what the loader did to produce it.
type Result struct {
	Table     *types.Table
	HeaderRow int
	Pruned    []string
	Coerced   []string
}

// Loader turns one sheet into a tidy table.
type Loader struct {
	reader Reader
}

// NewLoader returns a Loader reading through r.
func NewLoader(r Reader) *Loader {
	return &Loader{reader: r}
}

// Load reads sheet opts.Sheet of source, resolves the header row, drops artifact
// columns and coerces the requested date columns.
func (l *Loader) Load(source string, opts Options) (*Result, error) {
	if opts.Sheet == "" {
		opts.Sheet = DefaultSheet
	}
	cols, err := ParseColumnRange(opts.Columns)
	if err != nil {
		return nil, err
	}

	header := opts.Header.Row()
	if opts.Header.Auto() {
		scan := opts.ScanRows
		if scan <= 0 {
			scan = DefaultScanRows
		}
		grid, err := l.reader.ReadGrid(source, opts.Sheet, ReadOptions{RowLimit: scan})
		if err != nil {
			return nil, fmt.Errorf("scan for header: %w", err)
		}
		if header, err = ResolveHeader(grid, scan); err != nil {
			return nil, err
		}
	}

	table, err := l.reader.ReadTable(source, opts.Sheet, header, ReadOptions{
		RowLimit: opts.RowLimit,
		Columns:  cols,
	})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", opts.Sheet, err)
	}

	res := &Result{HeaderRow: header}
	if opts.DropArtifacts {
		table, res.Pruned = PruneArtifacts(table)
	}

	for _, name := range opts.DateColumns {
		col, ok := table.Column(name)
		if !ok {
			continue
		}
		if table, err = table.WithColumn(CoerceDates(col, opts.DayFirst)); err != nil {
			return nil, err
		}
		res.Coerced = append(res.Coerced, name)
	}

	res.Table = table
	return res, nil
}
