package channel

import (
	"errors"
	"fmt"
	"strings"
)

// Registry errors.
var (
	// ErrUnknownChannel indicates a name not present in the registry.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrNotReadable indicates a read on a write-only channel.
	ErrNotReadable = errors.New("channel is not readable")

	// ErrNotWritable indicates a write on a read-only channel.
	ErrNotWritable = errors.New("channel is not writable")
)

// OutOfRangeError reports a numeric value outside a channel's closed
// interval. It is raised before any wire traffic.
type OutOfRangeError struct {
	// Channel is the channel name.
	Channel string

	// Value is the rejected value.
	Value float64

	// Min and Max are the channel's declared bounds.
	Min, Max float64
}

// Error returns the error message.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("channel %q: value %g out of range [%g, %g]", e.Channel, e.Value, e.Min, e.Max)
}

// InvalidValueError reports a value outside a channel's accepted token set,
// or of a type the channel cannot represent. It is raised before any wire
// traffic.
type InvalidValueError struct {
	// Channel is the channel name.
	Channel string

	// Value is the rejected value.
	Value any

	// Accepted lists the accepted tokens, in declaration order.
	// Empty when the failure is a type mismatch rather than a token miss.
	Accepted []string
}

// Error returns the error message.
func (e *InvalidValueError) Error() string {
	if len(e.Accepted) == 0 {
		return fmt.Sprintf("channel %q: invalid value %v", e.Channel, e.Value)
	}
	return fmt.Sprintf("channel %q: invalid value %v (accepted: %s)",
		e.Channel, e.Value, strings.Join(e.Accepted, ", "))
}
