package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nconklindev/journeyload/internal/types"

	"github.com/xuri/excelize/v2"
)

// ExcelSource reads xlsx sheets with excelize. Numbers carrying a date number
// format come back as time values, text cells as text even when they look numeric.
type ExcelSource struct{}

func (ExcelSource) Rows(source, sheet string) (types.Grid, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, source)
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	c := &cellClassifier{f: f, sheet: sheet, date1904: date1904, dateStyles: make(map[int]bool)}
	grid := make(types.Grid, len(raw))
	for i, row := range raw {
		cells := make([]types.Value, len(row))
		for j, s := range row {
			cells[j] = c.classify(i, j, s)
		}
		grid[i] = cells
	}
	return grid, nil
}

// SheetNames lists the sheets of an xlsx workbook in tab order.
func SheetNames(source string) ([]string, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

type cellClassifier struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (c *cellClassifier) classify(row, col int, raw string) types.Value {
	if strings.TrimSpace(raw) == "" {
		return types.Missing()
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return types.Text(raw)
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return types.Number(num)
	}

	switch ct, _ := c.f.GetCellType(c.sheet, cell); ct {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return types.Text(raw)
	case excelize.CellTypeBool:
		if num != 0 {
			return types.Text("TRUE")
		}
		return types.Text("FALSE")
	}

	if c.isDateCell(cell) {
		if t, err := excelize.ExcelDateToTime(num, c.date1904); err == nil {
			return types.Time(t)
		}
	}
	return types.Number(num)
}

func (c *cellClassifier) isDateCell(cell string) bool {
	idx, err := c.f.GetCellStyle(c.sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if isDate, ok := c.dateStyles[idx]; ok {
		return isDate
	}

	style, err := c.f.GetStyle(idx)
	isDate := err == nil && isDateStyle(style)
	c.dateStyles[idx] = isDate
	return isDate
}

func isDateStyle(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 22, n >= 27 && n <= 36, n >= 45 && n <= 47, n >= 50 && n <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for date or clock tokens outside quoted literals and
// bracketed colour/locale sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	return strings.ContainsAny(s, "yd") || strings.Contains(s, "h:") || strings.Contains(s, "hh")
}
