package types

import (
	"fmt"
)

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string
	Values []Value
	// Declared is the tag reported when no value is present, as set by the
	// reader or a coercion. Empty means none.
	Declared TypeTag
}

// Tag infers the column's type tag from its values, falling back to the
// declared tag when every value is missing.
func (c Column) Tag() TypeTag {
	if c.Declared != "" && !c.HasValues() {
		return c.Declared
	}
	return InferTag(c.Values)
}

// HasValues reports whether at least one value is not missing.
func (c Column) HasValues() bool {
	for _, v := range c.Values {
		if !v.IsMissing() {
			return true
		}
	}
	return false
}

// Table is an ordered set of uniquely named columns of equal length.
// Methods that change the shape return a new Table; the receiver is never modified.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable builds a table, rejecting duplicate names and ragged columns.
func NewTable(columns []Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if i == 0 {
			t.rows = len(c.Values)
		} else if len(c.Values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), t.rows)
		}
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// NumRows returns the row count shared by all columns.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The returned values must not be modified.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Columns returns the columns in table order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Select returns a copy holding only the requested columns, in request order.
// Names that are not present are skipped and returned as the second result.
func (t *Table) Select(names []string) (*Table, []string) {
	var (
		cols    []Column
		missing []string
		seen    = make(map[string]bool, len(names))
	)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		c, ok := t.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols = append(cols, c)
	}
	return t.derive(cols), missing
}

// Drop returns a copy without the columns matched by drop, and the dropped names.
func (t *Table) Drop(drop func(name string) bool) (*Table, []string) {
	var (
		cols    []Column
		dropped []string
	)
	for _, c := range t.columns {
		if drop(c.Name) {
			dropped = append(dropped, c.Name)
			continue
		}
		cols = append(cols, c)
	}
	return t.derive(cols), dropped
}

// WithColumn returns a copy where the column of the same name is replaced.
func (t *Table) WithColumn(col Column) (*Table, error) {
	i, ok := t.index[col.Name]
	if !ok {
		return nil, fmt.Errorf("no column named %q", col.Name)
	}
	if len(col.Values) != t.rows {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows)
	}
	cols := t.Columns()
	cols[i] = col
	return t.derive(cols), nil
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

func (t *Table) derive(cols []Column) *Table {
	out := &Table{
		columns: cols,
		index:   make(map[string]int, len(cols)),
		rows:    t.rows,
	}
	for i, c := range cols {
		out.index[c.Name] = i
	}
	if len(cols) == 0 {
		out.rows = 0
	}
	return out
}
