package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentResource(t *testing.T) {
	t.Run("PrefersAddress", func(t *testing.T) {
		inst := &Instrument{
			Host:      "bhk-0001.local.",
			Addresses: []string{"192.168.1.50", "fe80::1"},
			Port:      5025,
		}
		assert.Equal(t, "TCPIP0::192.168.1.50::5025::SOCKET", inst.Resource())
	})

	t.Run("FallsBackToHost", func(t *testing.T) {
		inst := &Instrument{Host: "bhk-0001.local.", Port: 5555}
		assert.Equal(t, "TCPIP0::bhk-0001.local::5555::SOCKET", inst.Resource())
	})
}

func TestParseTXT(t *testing.T) {
	txt := ParseTXT([]string{
		"Manufacturer=KEPCO",
		"Model=BHK 300-0.6MG",
		"txtvers=1",
		"lxi",
		"",
	})

	assert.Equal(t, "KEPCO", txt["Manufacturer"])
	assert.Equal(t, "BHK 300-0.6MG", txt["Model"])
	assert.Equal(t, "1", txt["txtvers"])

	value, ok := txt["lxi"]
	assert.True(t, ok, "flag entries are kept")
	assert.Empty(t, value)

	assert.Len(t, txt, 4, "empty strings are dropped")
}

func TestEntryToInstrument(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		entry := &zeroconf.ServiceEntry{
			ServiceRecord: zeroconf.ServiceRecord{Instance: "BHK 300-0.6MG"},
			HostName:      "bhk-0001.local.",
			Port:          5025,
			Text:          []string{"Manufacturer=KEPCO"},
			AddrIPv4:      []net.IP{net.IPv4(192, 168, 1, 50)},
			AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
		}

		inst := entryToInstrument(entry, ServiceSCPIRaw)
		require.NotNil(t, inst)
		assert.Equal(t, "BHK 300-0.6MG", inst.Name)
		assert.Equal(t, "bhk-0001.local.", inst.Host)
		assert.Equal(t, []string{"192.168.1.50", "fe80::1"}, inst.Addresses)
		assert.Equal(t, uint16(5025), inst.Port)
		assert.Equal(t, ServiceSCPIRaw, inst.Service)
		assert.Equal(t, "KEPCO", inst.TXT["Manufacturer"])
	})

	t.Run("NilOrAnonymous", func(t *testing.T) {
		assert.Nil(t, entryToInstrument(nil, ServiceSCPIRaw))
		assert.Nil(t, entryToInstrument(&zeroconf.ServiceEntry{}, ServiceSCPIRaw))
	})
}

func TestMergeAddresses(t *testing.T) {
	merged := mergeAddresses(
		[]string{"192.168.1.50", "fe80::1"},
		[]string{"fe80::1", "10.0.0.5"},
	)
	assert.Equal(t, []string{"192.168.1.50", "fe80::1", "10.0.0.5"}, merged)
}

func TestDefaultBrowserConfig(t *testing.T) {
	config := DefaultBrowserConfig()
	assert.Equal(t, BrowseTimeout, config.BrowseTimeout)
	assert.Empty(t, config.Interface)

	b := NewBrowser(BrowserConfig{})
	assert.Equal(t, BrowseTimeout, b.config.BrowseTimeout)
}

func TestBrowseCancellation(t *testing.T) {
	// With no instruments on the network the browse channel must close
	// promptly once the context is cancelled.
	b := NewBrowser(DefaultBrowserConfig())

	ctx, cancel := context.WithCancel(context.Background())
	found, err := b.Browse(ctx, ServiceSCPIRaw)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-found:
		assert.False(t, ok, "channel should be closed, not deliver")
	case <-time.After(5 * time.Second):
		t.Fatal("browse channel not closed after cancellation")
	}
}
