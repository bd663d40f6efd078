package channel

import (
	"fmt"
	"math"
)

// Validator checks a candidate value before transmission and maps it to the
// wire value substituted into the channel's set-command template.
type Validator interface {
	// Validate returns the wire value for the candidate, or an error.
	// The channel name is used in error messages only.
	Validate(channel string, value any) (any, error)
}

// Range validates that a numeric value lies in the closed interval
// [Min, Max]. The wire value is the float64 itself, so set-command
// templates use the %g verb. Out-of-range values fail with
// *OutOfRangeError; nothing is clamped.
type Range struct {
	Min, Max float64
}

// Validate implements Validator.
func (r Range) Validate(channel string, value any) (any, error) {
	f, ok := toFloat64(value)
	if !ok {
		return nil, &InvalidValueError{Channel: channel, Value: value}
	}
	if math.IsNaN(f) || f < r.Min || f > r.Max {
		return nil, &OutOfRangeError{Channel: channel, Value: f, Min: r.Min, Max: r.Max}
	}
	return f, nil
}

// Token is one accepted value and the wire value it maps to.
type Token struct {
	// In is the accepted driver-side value (bool or string).
	In any

	// Wire is the value substituted into the set-command template.
	Wire any
}

// Tokens validates against an enumerated set of accepted values, in
// declaration order. Values not in the set fail with *InvalidValueError.
type Tokens []Token

// Validate implements Validator.
func (ts Tokens) Validate(channel string, value any) (any, error) {
	for _, t := range ts {
		if t.In == value {
			return t.Wire, nil
		}
	}
	return nil, &InvalidValueError{Channel: channel, Value: value, Accepted: ts.accepted()}
}

func (ts Tokens) accepted() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = fmt.Sprintf("%v", t.In)
	}
	return out
}

// toFloat64 converts any numeric type to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
