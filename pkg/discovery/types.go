package discovery

import (
	"fmt"
	"strings"
	"time"
)

// DNS-SD service types instruments advertise.
const (
	// ServiceSCPIRaw is raw-socket SCPI (dialable by pkg/scpi).
	ServiceSCPIRaw = "_scpi-raw._tcp"

	// ServiceLXI is the LXI core service.
	ServiceLXI = "_lxi._tcp"

	// ServiceVXI11 is VXI-11 RPC.
	ServiceVXI11 = "_vxi-11._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// BrowseTimeout is the default timeout for browse operations.
	BrowseTimeout = 10 * time.Second
)

// Instrument is one discovered instrument service.
type Instrument struct {
	// Name is the advertised instance name.
	Name string

	// Host is the advertised hostname.
	Host string

	// Addresses are the instrument's IP addresses as strings.
	Addresses []string

	// Port is the service port.
	Port uint16

	// Service is the DNS-SD service type this entry came from.
	Service string

	// TXT holds the advertised TXT records as key/value pairs.
	TXT map[string]string
}

// Resource returns a VISA resource string for the instrument. For
// raw-socket services the result is dialable by pkg/scpi; other service
// types still produce a socket resource, which is correct for the many
// LXI instruments that serve raw SCPI alongside.
func (i *Instrument) Resource() string {
	host := i.Host
	if len(i.Addresses) > 0 {
		host = i.Addresses[0]
	}
	host = strings.TrimSuffix(host, ".")
	return fmt.Sprintf("TCPIP0::%s::%d::SOCKET", host, i.Port)
}

// ParseTXT decodes DNS-SD TXT strings ("key=value") into a map.
// Flag entries without '=' map to an empty value; empty strings are
// ignored.
func ParseTXT(txt []string) map[string]string {
	out := make(map[string]string, len(txt))
	for _, s := range txt {
		if s == "" {
			continue
		}
		key, value, _ := strings.Cut(s, "=")
		out[key] = value
	}
	return out
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for FindFirst.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
	}
}
