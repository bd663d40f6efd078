package channel

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFunc transforms a raw response line into the channel's value.
type ParseFunc func(resp string) (any, error)

// ParseString trims surrounding whitespace and returns the response as-is.
func ParseString(resp string) (any, error) {
	return strings.TrimSpace(resp), nil
}

// ParseFloat parses the response as a float64.
func ParseFloat(resp string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(resp), 64)
	if err != nil {
		return nil, fmt.Errorf("malformed numeric response %q", resp)
	}
	return f, nil
}

// FloatList returns a parser that splits the response on sep and parses
// every part as a float64. Used for compound queries such as
// "MEAS:VOLT?; CURR?" whose response is "12.5;0.3".
func FloatList(sep string) ParseFunc {
	return func(resp string) (any, error) {
		parts := strings.Split(resp, sep)
		out := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("malformed numeric response %q", resp)
			}
			out[i] = f
		}
		return out, nil
	}
}
