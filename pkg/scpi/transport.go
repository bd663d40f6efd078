package scpi

import "context"

// Transport is a message-based connection to a SCPI instrument.
// Implemented by Conn; drivers accept this interface so tests and
// gateway transports can substitute their own implementation.
//
// Implementations are synchronous: each call is one blocking round trip.
// Callers sharing a Transport across goroutines must serialize access
// themselves unless the implementation documents otherwise.
type Transport interface {
	// Query sends a command and returns the instrument's response line,
	// with the line termination stripped.
	Query(ctx context.Context, cmd string) (string, error)

	// Write sends a command that produces no response.
	Write(ctx context.Context, cmd string) error

	// Close closes the connection. Subsequent calls return ErrNotConnected.
	Close() error
}

// Compile-time interface satisfaction check.
var _ Transport = (*Conn)(nil)
