package validate

import (
	"fmt"
	"strings"

	"github.com/nconklindev/journeyload/internal/types"
)

// Group names a group of contracts.
type Group string

const (
	GroupPresence Group = "presence"
	GroupTypes    Group = "types"
	GroupRanges   Group = "ranges"
)

// SchemaError reports the first contract group a table failed.
type SchemaError struct {
	Group Group
	// Missing lists every absent required column (presence).
	Missing []string
	// Column is the offending column (types, ranges).
	Column string
	// Actual and Expected are set by the type check.
	Actual   types.TypeTag
	Expected types.TypeTag
	// Violations counts out-of-range values (ranges).
	Violations int
	msg        string
}

func (e *SchemaError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	switch e.Group {
	case GroupPresence:
		return "missing required columns: " + strings.Join(e.Missing, ", ")
	case GroupTypes:
		return fmt.Sprintf("column %q has type %s, expected %s", e.Column, e.Actual, e.Expected)
	default:
		return fmt.Sprintf("column %q has %d out-of-range values", e.Column, e.Violations)
	}
}
