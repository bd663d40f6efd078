package scpi

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the conventional raw-socket SCPI port (LXI).
const DefaultPort = 5025

// ResourceKind identifies the interface class of a VISA resource.
type ResourceKind int

const (
	// KindTCPIP is a LAN instrument (raw socket or VXI-11).
	KindTCPIP ResourceKind = iota

	// KindGPIB is an IEEE-488 instrument behind a GPIB controller.
	KindGPIB

	// KindSerial is an RS-232 instrument (ASRL).
	KindSerial
)

// String returns the resource kind name.
func (k ResourceKind) String() string {
	switch k {
	case KindTCPIP:
		return "TCPIP"
	case KindGPIB:
		return "GPIB"
	case KindSerial:
		return "ASRL"
	default:
		return "UNKNOWN"
	}
}

// Resource is a parsed VISA-style resource string.
type Resource struct {
	// Kind is the interface class.
	Kind ResourceKind

	// Board is the interface board index (the digit suffix, 0 if omitted).
	Board int

	// Host is the instrument hostname or IP (TCPIP only).
	Host string

	// Port is the TCP port (TCPIP socket resources only).
	Port int

	// Socket is true for raw-socket TCPIP resources (::SOCKET suffix).
	// TCPIP resources without it address a VXI-11 instrument.
	Socket bool

	// PrimaryAddr is the GPIB primary address (GPIB only).
	PrimaryAddr int

	// Raw is the original resource string.
	Raw string
}

// Addr returns the host:port dial address for TCPIP socket resources.
func (r Resource) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// Dialable returns true if this package can open the resource directly.
func (r Resource) Dialable() bool {
	return r.Kind == KindTCPIP && r.Socket
}

// String returns the canonical resource string.
func (r Resource) String() string {
	switch r.Kind {
	case KindTCPIP:
		if r.Socket {
			return fmt.Sprintf("TCPIP%d::%s::%d::SOCKET", r.Board, r.Host, r.Port)
		}
		return fmt.Sprintf("TCPIP%d::%s::INSTR", r.Board, r.Host)
	case KindGPIB:
		return fmt.Sprintf("GPIB%d::%d::INSTR", r.Board, r.PrimaryAddr)
	case KindSerial:
		return fmt.Sprintf("ASRL%d::INSTR", r.Board)
	default:
		return r.Raw
	}
}

// ParseResource parses a VISA-style resource string.
//
// Accepted forms:
//
//	TCPIP[board]::host[::port]::SOCKET
//	TCPIP[board]::host[::INSTR]
//	GPIB[board]::primary[::INSTR]
//	ASRL[board][::INSTR]
//	host:port                         (shorthand for a TCPIP socket resource)
//
// Matching is case-insensitive for the interface and suffix keywords.
func ParseResource(s string) (Resource, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Resource{}, fmt.Errorf("%w: empty string", ErrInvalidResource)
	}

	if !strings.Contains(s, "::") {
		return parseHostPort(raw, s)
	}

	parts := strings.Split(s, "::")
	iface := strings.ToUpper(parts[0])

	switch {
	case strings.HasPrefix(iface, "TCPIP"):
		return parseTCPIP(raw, iface, parts[1:])
	case strings.HasPrefix(iface, "GPIB"):
		return parseGPIB(raw, iface, parts[1:])
	case strings.HasPrefix(iface, "ASRL"):
		board, err := boardIndex(iface, "ASRL")
		if err != nil {
			return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
		}
		return Resource{Kind: KindSerial, Board: board, Raw: raw}, nil
	default:
		return Resource{}, fmt.Errorf("%w: unknown interface in %q", ErrInvalidResource, raw)
	}
}

func parseHostPort(raw, s string) (Resource, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Resource{}, fmt.Errorf("%w: bad port in %q", ErrInvalidResource, raw)
	}
	return Resource{Kind: KindTCPIP, Host: host, Port: port, Socket: true, Raw: raw}, nil
}

func parseTCPIP(raw, iface string, rest []string) (Resource, error) {
	board, err := boardIndex(iface, "TCPIP")
	if err != nil || len(rest) == 0 || rest[0] == "" {
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}

	r := Resource{Kind: KindTCPIP, Board: board, Host: rest[0], Raw: raw}
	rest = rest[1:]

	if len(rest) == 0 {
		// Bare TCPIP::host defaults to a VXI-11 instrument resource.
		return r, nil
	}

	last := strings.ToUpper(rest[len(rest)-1])
	switch last {
	case "SOCKET":
		r.Socket = true
		r.Port = DefaultPort
		if len(rest) == 2 {
			port, err := strconv.Atoi(rest[0])
			if err != nil || port <= 0 || port > 65535 {
				return Resource{}, fmt.Errorf("%w: bad port in %q", ErrInvalidResource, raw)
			}
			r.Port = port
		} else if len(rest) != 1 {
			return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
		}
		return r, nil
	case "INSTR":
		if len(rest) != 1 {
			return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
		}
		return r, nil
	default:
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}
}

func parseGPIB(raw, iface string, rest []string) (Resource, error) {
	board, err := boardIndex(iface, "GPIB")
	if err != nil || len(rest) == 0 {
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}
	if len(rest) == 2 && !strings.EqualFold(rest[1], "INSTR") {
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}
	if len(rest) > 2 {
		return Resource{}, fmt.Errorf("%w: %q", ErrInvalidResource, raw)
	}
	addr, err := strconv.Atoi(rest[0])
	if err != nil || addr < 0 || addr > 30 {
		return Resource{}, fmt.Errorf("%w: bad GPIB address in %q", ErrInvalidResource, raw)
	}
	return Resource{Kind: KindGPIB, Board: board, PrimaryAddr: addr, Raw: raw}, nil
}

// boardIndex parses the optional digit suffix of an interface token,
// e.g. "TCPIP0" -> 0, "GPIB" -> 0, "ASRL2" -> 2.
func boardIndex(iface, prefix string) (int, error) {
	suffix := iface[len(prefix):]
	if suffix == "" {
		return 0, nil
	}
	return strconv.Atoi(suffix)
}
