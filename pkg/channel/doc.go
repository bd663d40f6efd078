// Package channel implements a declarative registry of instrument channels.
//
// A channel is a named, schema-fixed mapping between a driver-side value and
// one or more SCPI command strings: a query string for reads, a set-command
// template for writes, a validator applied before anything is transmitted,
// and a parser applied to the raw response. Channels are declared once at
// driver-definition time; the value they expose lives in the instrument,
// never in driver memory - every read is a fresh round trip and no write is
// read back for confirmation.
//
// Drivers declare their command set as a Registry and go through its generic
// Read/Write entry points:
//
//	reg := channel.NewRegistry(
//	    &channel.Channel{
//	        Name:      "voltage",
//	        Query:     "SOUR:VOLT?",
//	        SetFormat: "SOUR:VOLT %g",
//	        Validator: channel.Range{Min: 0, Max: 300},
//	        Parse:     channel.ParseFloat,
//	    },
//	)
//
//	v, err := reg.Read(ctx, transport, "voltage")
//	err = reg.Write(ctx, transport, "voltage", 12.5)
//
// Validation failures (*OutOfRangeError, *InvalidValueError) are raised
// before any wire traffic; values are never clamped or corrected.
package channel
