// Package scpi provides a message-based transport for SCPI instruments.
//
// SCPI (Standard Commands for Programmable Instruments) is a line-oriented
// ASCII protocol: the host sends a command string, and queries (commands
// ending in '?') produce a single response line.
//
// The package defines the Transport interface consumed by instrument
// drivers, and implements it for raw-socket SCPI over TCP (the transport
// LXI instruments expose on port 5025):
//
//	conn, err := scpi.Dial(ctx, "TCPIP0::10.0.0.42::5025::SOCKET", scpi.DefaultConfig())
//	if err != nil { ... }
//	defer conn.Close()
//
//	idn, err := conn.Query(ctx, "*IDN?")
//
// VISA-style resource strings for GPIB and serial instruments parse but are
// not dialable here; they require an external gateway or VISA stack. Wrap
// such a handle in your own Transport implementation instead.
//
// Every transport failure is reported as a *CommError and is never retried
// or swallowed.
package scpi
