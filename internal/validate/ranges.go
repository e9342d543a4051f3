package validate

import (
	"fmt"

	"github.com/nconklindev/journeyload/internal/types"
)

// CheckRanges applies the sanity bounds for coordinates and speeds. Only
// numeric columns are checked and missing values always pass.
func CheckRanges(t *types.Table, speedTolerance float64) error {
	bounds := []struct {
		column   string
		min, max float64
	}{
		{ColLatitude, -90, 90},
		{ColLongitude, -180, 180},
	}
	for _, b := range bounds {
		n, ok := countNumeric(t, b.column, func(x float64) bool { return x < b.min || x > b.max })
		if ok && n > 0 {
			return &SchemaError{
				Group: GroupRanges, Column: b.column, Violations: n,
				msg: fmt.Sprintf("%s out of range count: %d", b.column, n),
			}
		}
	}

	for _, name := range []string{ColHorizontal, ColRoadSpeedLimit} {
		n, ok := countNumeric(t, name, func(x float64) bool { return x < -speedTolerance })
		if ok && n > 0 {
			return &SchemaError{
				Group: GroupRanges, Column: name, Violations: n,
				msg: fmt.Sprintf("%s has %d negative values", name, n),
			}
		}
	}
	return nil
}

// countNumeric counts non-missing values of a numeric column matching bad.
// ok is false when the column is absent or not numeric.
func countNumeric(t *types.Table, name string, bad func(float64) bool) (n int, ok bool) {
	col, found := t.Column(name)
	if !found || col.Tag() != types.TagNumeric {
		return 0, false
	}
	for _, v := range col.Values {
		if v.IsNumber() && bad(v.Float()) {
			n++
		}
	}
	return n, true
}
