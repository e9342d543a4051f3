package ingest

import (
	"errors"

	"github.com/nconklindev/journeyload/internal/types"
)

// DefaultScanRows is how many leading rows are scored when guessing the header.
const DefaultScanRows = 40

// ErrEmptySheet is returned when there are no rows to score.
var ErrEmptySheet = errors.New("sheet is empty: no rows to scan for a header")

// rowScore ranks a candidate header row. Fields compare in declaration order.
type rowScore struct {
	filled   int
	text     int
	distinct int
}

func (s rowScore) less(o rowScore) bool {
	if s.filled != o.filled {
		return s.filled < o.filled
	}
	if s.text != o.text {
		return s.text < o.text
	}
	return s.distinct < o.distinct
}

func scoreRow(row []types.Value) rowScore {
	var s rowScore
	seen := make(map[string]struct{}, len(row))
	for _, v := range row {
		if v.IsMissing() {
			continue
		}
		s.filled++
		if v.IsText() {
			s.text++
		}
		seen[v.Key()] = struct{}{}
	}
	s.distinct = len(seen)
	return s
}

// ResolveHeader returns the 0-based index of the row in the first scanLimit rows
// of grid that looks most like a header: most filled cells, then most text
// cells, then most distinct values. The first row reaching the best score wins.
// A non-positive scanLimit falls back to DefaultScanRows.
func ResolveHeader(grid types.Grid, scanLimit int) (int, error) {
	if scanLimit <= 0 {
		scanLimit = DefaultScanRows
	}
	n := min(len(grid), scanLimit)
	if n == 0 {
		return 0, ErrEmptySheet
	}

	best, bestScore := 0, scoreRow(grid[0])
	for i := 1; i < n; i++ {
		if s := scoreRow(grid[i]); bestScore.less(s) {
			best, bestScore = i, s
		}
	}
	return best, nil
}
