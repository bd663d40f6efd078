package scpi

import (
	"errors"
	"testing"
)

func TestParseResource(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Resource
	}{
		{
			name: "TCPIPSocket",
			in:   "TCPIP0::192.168.1.50::5025::SOCKET",
			want: Resource{Kind: KindTCPIP, Host: "192.168.1.50", Port: 5025, Socket: true},
		},
		{
			name: "TCPIPSocketDefaultPort",
			in:   "TCPIP0::bhk.lab.local::SOCKET",
			want: Resource{Kind: KindTCPIP, Host: "bhk.lab.local", Port: DefaultPort, Socket: true},
		},
		{
			name: "TCPIPSocketBoardIndex",
			in:   "TCPIP2::10.0.0.5::5555::SOCKET",
			want: Resource{Kind: KindTCPIP, Board: 2, Host: "10.0.0.5", Port: 5555, Socket: true},
		},
		{
			name: "TCPIPInstr",
			in:   "TCPIP0::192.168.1.50::INSTR",
			want: Resource{Kind: KindTCPIP, Host: "192.168.1.50"},
		},
		{
			name: "TCPIPBareHost",
			in:   "TCPIP::192.168.1.50",
			want: Resource{Kind: KindTCPIP, Host: "192.168.1.50"},
		},
		{
			name: "HostPortShorthand",
			in:   "192.168.1.50:5025",
			want: Resource{Kind: KindTCPIP, Host: "192.168.1.50", Port: 5025, Socket: true},
		},
		{
			name: "GPIB",
			in:   "GPIB0::8::INSTR",
			want: Resource{Kind: KindGPIB, PrimaryAddr: 8},
		},
		{
			name: "GPIBNoSuffix",
			in:   "GPIB::8",
			want: Resource{Kind: KindGPIB, PrimaryAddr: 8},
		},
		{
			name: "Serial",
			in:   "ASRL2::INSTR",
			want: Resource{Kind: KindSerial, Board: 2},
		},
		{
			name: "LowercaseKeywords",
			in:   "tcpip0::192.168.1.50::socket",
			want: Resource{Kind: KindTCPIP, Host: "192.168.1.50", Port: DefaultPort, Socket: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseResource(tc.in)
			if err != nil {
				t.Fatalf("ParseResource(%q) failed: %v", tc.in, err)
			}
			tc.want.Raw = tc.in
			if got != tc.want {
				t.Errorf("ParseResource(%q):\n got %+v\nwant %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseResourceInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"Whitespace", "   "},
		{"NoPort", "192.168.1.50"},
		{"BadPort", "TCPIP0::host::notaport::SOCKET"},
		{"PortOutOfRange", "TCPIP0::host::70000::SOCKET"},
		{"BadSuffix", "TCPIP0::host::5025::BOGUS"},
		{"MissingHost", "TCPIP0::::SOCKET"},
		{"UnknownInterface", "USB0::0x1234::0x5678::INSTR"},
		{"GPIBAddressTooHigh", "GPIB0::31::INSTR"},
		{"GPIBNonNumeric", "GPIB0::eight::INSTR"},
		{"BadBoardIndex", "TCPIPx::host::SOCKET"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseResource(tc.in)
			if !errors.Is(err, ErrInvalidResource) {
				t.Errorf("ParseResource(%q): expected ErrInvalidResource, got %v", tc.in, err)
			}
		})
	}
}

func TestResourceString(t *testing.T) {
	cases := []struct {
		name string
		res  Resource
		want string
	}{
		{
			name: "Socket",
			res:  Resource{Kind: KindTCPIP, Host: "10.0.0.5", Port: 5025, Socket: true},
			want: "TCPIP0::10.0.0.5::5025::SOCKET",
		},
		{
			name: "Instr",
			res:  Resource{Kind: KindTCPIP, Host: "10.0.0.5"},
			want: "TCPIP0::10.0.0.5::INSTR",
		},
		{
			name: "GPIB",
			res:  Resource{Kind: KindGPIB, PrimaryAddr: 8},
			want: "GPIB0::8::INSTR",
		},
		{
			name: "Serial",
			res:  Resource{Kind: KindSerial, Board: 1},
			want: "ASRL1::INSTR",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.res.String(); got != tc.want {
				t.Errorf("String(): expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResourceDialable(t *testing.T) {
	cases := []struct {
		name string
		res  Resource
		want bool
	}{
		{"Socket", Resource{Kind: KindTCPIP, Socket: true}, true},
		{"VXI11", Resource{Kind: KindTCPIP}, false},
		{"GPIB", Resource{Kind: KindGPIB}, false},
		{"Serial", Resource{Kind: KindSerial}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.res.Dialable(); got != tc.want {
				t.Errorf("Dialable(): expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResourceAddr(t *testing.T) {
	r := Resource{Kind: KindTCPIP, Host: "10.0.0.5", Port: 5025, Socket: true}
	if got := r.Addr(); got != "10.0.0.5:5025" {
		t.Errorf("Addr(): expected 10.0.0.5:5025, got %q", got)
	}
}
