// Package bhk drives the Kepco BHK series programmable DC power supply.
//
// The driver is a declarative channel table over the instrument's SCPI
// command set plus two behavioral procedures: a linear current ramp and
// shutdown. It is stateless with respect to the values it controls - every
// read and write is a fresh round trip, and nothing is cached host-side.
//
//	supply, err := bhk.Open(ctx, "TCPIP0::10.0.0.42::5025::SOCKET")
//	if err != nil { ... }
//	defer supply.Close()
//
//	err = supply.RampToZero(ctx, 0.1)  // settle at 0 A before enabling
//	err = supply.Enable(ctx)
//	err = supply.SetCurrent(ctx, 0.5)  // amps
//
// All setpoints are validated host-side against the instrument's hardware
// ranges (0-300 V, 0-0.6 A) before anything is transmitted; out-of-range
// values fail without wire traffic and are never clamped.
//
// The driver is synchronous and not internally locked beyond the transport's
// per-exchange serialization. A ramp blocks its caller for the full duration
// (0.1 s per step) and is abandoned mid-way only by context cancellation.
package bhk
