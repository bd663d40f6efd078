// Package trace provides structured command/response tracing for SCPI
// connections.
//
// This package defines the Logger interface and Event types for capturing
// every command sent to an instrument and every response received. It is
// separate from operational logging (slog) - a trace is a complete
// machine-readable record of the wire conversation, suitable for debugging
// a misbehaving instrument or auditing what a control program actually did.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = trace.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Logger, _ = trace.NewFileLogger("session.strc")
//
//	// Both: use MultiLogger
//	cfg.Logger = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys; the
// conventional extension is .strc. Reader iterates over a file, optionally
// filtered by session, direction, category or time range.
package trace
