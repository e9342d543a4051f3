package types

import (
	"math"
	"strconv"
	"time"
)

// Value is a single typed cell. The zero Value is missing.
type Value struct {
	kind Kind
	text string
	num  float64
	time time.Time
}

// Missing returns the absence marker.
func Missing() Value {
	return Value{}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// Time returns a date-time value.
func Time(t time.Time) Value {
	return Value{kind: KindTime, time: t}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }
func (v Value) IsText() bool { return v.kind == KindText }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsTime() bool { return v.kind == KindTime }
func (v Value) Float() float64 { return v.num }
func (v Value) Str() string { return v.text }
func (v Value) Timestamp() time.Time { return v.time }

// TimeLayout is used whenever a date-time value is rendered as text.
const TimeLayout = "2006-01-02 15:04:05"

// String renders the value the way it is written to delimited output.
// Missing values render as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.time.Format(TimeLayout)
	default:
		return ""
	}
}

// Key returns a kind-qualified identity used for distinct counting, so that
// the number 1 and the text "1" stay distinct.
func (v Value) Key() string {
	return v.kind.String() + ":" + v.String()
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindTime:
		return v.time.Equal(o.time)
	default:
		return true
	}
}

// InferTag classifies a column by the kinds of its non-missing values.
// A column with no non-missing values is TagMixed: nothing resolves it.
// Column.Tag consults the declared tag in that case.
func InferTag(values []Value) TypeTag {
	var text, num, ts int
	for _, v := range values {
		switch v.kind {
		case KindText:
			text++
		case KindNumber:
			num++
		case KindTime:
			ts++
		}
	}
	switch {
	case text > 0 && num == 0 && ts == 0:
		return TagText
	case num > 0 && text == 0 && ts == 0:
		return TagNumeric
	case ts > 0 && text == 0 && num == 0:
		return TagDatetime
	default:
		return TagMixed
	}
}
