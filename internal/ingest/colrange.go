package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

type span struct {
	from, to int // 0-based, inclusive
}

// ColumnRange is a parsed spreadsheet column selection such as "B:BC" or "A,C:E".
// The zero value selects every column.
type ColumnRange struct {
	spec  string
	spans []span
}

// ParseColumnRange parses letter notation: comma-separated single columns or
// inclusive "X:Y" spans. An empty spec selects all columns.
func ParseColumnRange(spec string) (ColumnRange, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ColumnRange{}, nil
	}

	r := ColumnRange{spec: spec}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return ColumnRange{}, fmt.Errorf("column range %q: empty element", spec)
		}
		lo, hi, isSpan := strings.Cut(part, ":")
		from, err := columnIndex(lo)
		if err != nil {
			return ColumnRange{}, fmt.Errorf("column range %q: %w", spec, err)
		}
		to := from
		if isSpan {
			if to, err = columnIndex(hi); err != nil {
				return ColumnRange{}, fmt.Errorf("column range %q: %w", spec, err)
			}
		}
		if to < from {
			from, to = to, from
		}
		r.spans = append(r.spans, span{from: from, to: to})
	}
	return r, nil
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// All reports whether the range selects every column.
func (r ColumnRange) All() bool { return len(r.spans) == 0 }

func (r ColumnRange) String() string { return r.spec }

// Indices returns the selected 0-based column indices below width, ascending
// and without duplicates.
func (r ColumnRange) Indices(width int) []int {
	if r.All() {
		out := make([]int, width)
		for i := range out {
			out[i] = i
		}
		return out
	}

	seen := make(map[int]bool)
	var out []int
	for _, s := range r.spans {
		for i := s.from; i <= s.to && i < width; i++ {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	sort.Ints(out)
	return out
}
