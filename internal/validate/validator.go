// Package validate enforces the Journey Event table contract: required
// columns are present, have the expected type tags and hold sane values.
package validate

import (
	"fmt"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/types"
)

// Journey Event column names.
const (
	ColJourneyID      = "Journey ID"
	ColEventTimeStamp = "Event Time Stamp"
	ColGPSDateTime    = "GPS Date Time"
	ColLatitude       = "Latitude"
	ColLongitude      = "Longitude"
	ColHorizontal     = "Horizontal Speed"
	ColRoadSpeedLimit = "Road Speed Limit"
)

// DefaultSpeedTolerance absorbs floating noise around zero in speed columns.
const DefaultSpeedTolerance = 1e-6

// TypeRule expects a column to carry a type tag.
type TypeRule struct {
	Column string
	Tag    types.TypeTag
}

// RuleSet describes what a valid table looks like.
type RuleSet struct {
	Required []string
	// Types are checked in order; the first mismatch is reported.
	Types []TypeRule
	// SpeedTolerance is how far below zero a speed may fall before it counts as negative.
	SpeedTolerance float64
}

// JourneyEventRules returns the rule set for the Journey Event keep set.
func JourneyEventRules() RuleSet {
	return RuleSet{
		Required: []string{
			ColJourneyID, ColEventTimeStamp, ColGPSDateTime,
			ColLatitude, ColLongitude, ColHorizontal, ColRoadSpeedLimit,
		},
		Types: []TypeRule{
			{ColJourneyID, types.TagText},
			{ColEventTimeStamp, types.TagDatetime},
			{ColGPSDateTime, types.TagDatetime},
			{ColLatitude, types.TagNumeric},
			{ColLongitude, types.TagNumeric},
			{ColHorizontal, types.TagNumeric},
			{ColRoadSpeedLimit, types.TagNumeric},
		},
		SpeedTolerance: DefaultSpeedTolerance,
	}
}

// Validator runs presence, type and range checks, stopping at the first group that fails.
type Validator struct {
	rules RuleSet
}

// New returns a Validator for rules.
func New(rules RuleSet) *Validator {
	return &Validator{rules: rules}
}

// Validate returns nil when t satisfies every contract, a *SchemaError when it
// does not, and an error wrapping config.ErrInvalid for a malformed rule.
// The table is never modified.
func (v *Validator) Validate(t *types.Table) error {
	if err := CheckPresence(t, v.rules.Required); err != nil {
		return err
	}
	if err := CheckTypes(t, v.rules.Types); err != nil {
		return err
	}
	return CheckRanges(t, v.rules.SpeedTolerance)
}

// CheckPresence fails listing every required column that t lacks.
func CheckPresence(t *types.Table, required []string) error {
	var missing []string
	for _, name := range required {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Group: GroupPresence, Missing: missing}
	}
	return nil
}

// CheckTypes fails on the first present column whose inferred tag does not
// satisfy its rule. Absent columns are left to the presence check.
func CheckTypes(t *types.Table, rules []TypeRule) error {
	for _, rule := range rules {
		col, ok := t.Column(rule.Column)
		if !ok {
			continue
		}
		actual := col.Tag()
		match, err := satisfies(actual, rule.Tag, col.HasValues())
		if err != nil {
			return fmt.Errorf("rule for column %q: %w", rule.Column, err)
		}
		if !match {
			return &SchemaError{Group: GroupTypes, Column: rule.Column, Actual: actual, Expected: rule.Tag}
		}
	}
	return nil
}

func satisfies(actual, expected types.TypeTag, hasValues bool) (bool, error) {
	switch expected {
	case types.TagText:
		// mixed columns still hold text cells; an empty column holds no counter-example
		return actual == types.TagText || actual == types.TagMixed || !hasValues, nil
	case types.TagNumeric, types.TagDatetime:
		return actual == expected, nil
	default:
		return false, fmt.Errorf("%w: unknown type tag %q", config.ErrInvalid, expected)
	}
}
