package scpi

import (
	"errors"
	"fmt"
)

// Transport errors.
var (
	// ErrNotConnected indicates the connection has been closed.
	ErrNotConnected = errors.New("not connected")

	// ErrEmptyCommand indicates an empty command string.
	ErrEmptyCommand = errors.New("empty command")

	// ErrInvalidResource indicates a resource string that does not parse.
	ErrInvalidResource = errors.New("invalid resource string")

	// ErrUnsupportedResource indicates a resource this package cannot dial
	// (GPIB, serial, or VXI-11 resources need an external gateway).
	ErrUnsupportedResource = errors.New("resource not dialable")
)

// CommError reports a transport failure: the connection could not be
// established, or a command could not be sent or its response received.
// It wraps the underlying error and is never retried by this package.
type CommError struct {
	// Op is the operation that failed: "dial", "write", "query" or "read".
	Op string

	// Resource is the resource string of the affected connection.
	Resource string

	// Err is the underlying error.
	Err error
}

// Error returns the error message.
func (e *CommError) Error() string {
	return fmt.Sprintf("scpi: %s %s: %v", e.Op, e.Resource, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommError) Unwrap() error {
	return e.Err
}
