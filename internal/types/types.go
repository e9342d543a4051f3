package types

// Kind identifies what a Value holds.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// TypeTag classifies a column from the population of its values.
type TypeTag string

const (
	TagText     TypeTag = "text"
	TagNumeric  TypeTag = "numeric"
	TagDatetime TypeTag = "datetime"
	TagMixed    TypeTag = "mixed"
)

// Grid is a raw block of cells as read from a sheet, row-major.
type Grid [][]Value

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Pad extends every row with missing cells up to the grid width.
func (g Grid) Pad() Grid {
	w := g.Width()
	for i, row := range g {
		for len(row) < w {
			row = append(row, Missing())
		}
		g[i] = row
	}
	return g
}
