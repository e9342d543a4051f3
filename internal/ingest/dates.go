package ingest

import (
	"strings"
	"time"

	"github.com/nconklindev/journeyload/internal/types"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// ParseDate parses a textual date-time. With dayFirst, ambiguous numeric dates
// such as "03/04/2024" resolve to 3 April. Results are in UTC.
func ParseDate(s string, dayFirst bool) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(s), time.UTC,
		dateparse.PreferMonthFirst(!dayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
}

// CoerceDates returns a copy of col with every value converted to a date-time.
// Existing date-times are kept, numbers are read as Excel serial dates and
// anything that cannot be parsed becomes missing. The result is declared
// datetime, so a column where nothing parsed still carries the datetime tag.
func CoerceDates(col types.Column, dayFirst bool) types.Column {
	out := types.Column{
		Name:     col.Name,
		Values:   make([]types.Value, len(col.Values)),
		Declared: types.TagDatetime,
	}
	for i, v := range col.Values {
		out.Values[i] = coerceDate(v, dayFirst)
	}
	return out
}

func coerceDate(v types.Value, dayFirst bool) types.Value {
	switch v.Kind() {
	case types.KindTime:
		return v
	case types.KindNumber:
		if t, err := excelize.ExcelDateToTime(v.Float(), false); err == nil {
			return types.Time(t)
		}
	case types.KindText:
		if t, err := ParseDate(v.Str(), dayFirst); err == nil {
			return types.Time(t)
		}
	}
	return types.Missing()
}
