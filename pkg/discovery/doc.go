// Package discovery implements mDNS/DNS-SD browsing for LAN instruments.
//
// LXI instruments advertise themselves via DNS-SD; the service types this
// package browses are:
//
//   - _scpi-raw._tcp: raw-socket SCPI, the transport pkg/scpi dials
//   - _lxi._tcp: the LXI core service (instrument web/control page)
//   - _vxi-11._tcp: VXI-11 RPC instruments
//
// Browsing yields Instrument entries; for raw-socket services,
// Instrument.Resource returns a VISA resource string that scpi.Dial
// accepts directly:
//
//	browser := discovery.NewBrowser(discovery.DefaultBrowserConfig())
//	found, err := browser.Browse(ctx, discovery.ServiceSCPIRaw)
//	for inst := range found {
//	    fmt.Println(inst.Name, inst.Resource())
//	}
//
// Only instruments that advertise are discoverable; GPIB and serial
// instruments are not, and their resources must be configured by hand.
package discovery
