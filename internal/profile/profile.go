// Package profile summarises the columns of a loaded table.
package profile

import (
	"github.com/nconklindev/journeyload/internal/types"

	"github.com/montanaflynn/stats"
)

// ColumnProfile describes one column. Min, Max and Mean are only set for
// numeric columns with at least one value.
type ColumnProfile struct {
	Name     string
	Tag      types.TypeTag
	Count    int
	Missing  int
	Distinct int
	HasStats bool
	Min      float64
	Max      float64
	Mean     float64
}

// Describe profiles every column of t in table order.
func Describe(t *types.Table) ([]ColumnProfile, error) {
	cols := t.Columns()
	out := make([]ColumnProfile, 0, len(cols))
	for _, c := range cols {
		p, err := describeColumn(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func describeColumn(c types.Column) (ColumnProfile, error) {
	p := ColumnProfile{Name: c.Name, Tag: c.Tag(), Count: len(c.Values)}

	seen := make(map[string]struct{})
	var data stats.Float64Data
	for _, v := range c.Values {
		if v.IsMissing() {
			p.Missing++
			continue
		}
		seen[v.Key()] = struct{}{}
		if v.IsNumber() {
			data = append(data, v.Float())
		}
	}
	p.Distinct = len(seen)

	if p.Tag != types.TagNumeric || len(data) == 0 {
		return p, nil
	}

	var err error
	if p.Min, err = stats.Min(data); err != nil {
		return p, err
	}
	if p.Max, err = stats.Max(data); err != nil {
		return p, err
	}
	if p.Mean, err = stats.Mean(data); err != nil {
		return p, err
	}
	p.HasStats = true
	return p, nil
}
