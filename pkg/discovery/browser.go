package discovery

import (
	"context"
	"errors"
	"net"

	"github.com/enbility/zeroconf/v3"
)

// ErrNotFound indicates no instrument appeared before the deadline.
var ErrNotFound = errors.New("discovery: no instrument found")

// Browser browses DNS-SD for instrument services using zeroconf.
type Browser struct {
	config BrowserConfig
}

// NewBrowser creates a new mDNS browser.
func NewBrowser(config BrowserConfig) *Browser {
	if config.BrowseTimeout == 0 {
		config.BrowseTimeout = BrowseTimeout
	}
	return &Browser{config: config}
}

// Browse searches for instruments advertising the given service type.
// Entries are aggregated by instance name - addresses from multiple
// interfaces are merged into a single emitted Instrument. The returned
// channel is closed when the context is cancelled.
func (b *Browser) Browse(ctx context.Context, service string) (<-chan *Instrument, error) {
	out := make(chan *Instrument)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(out)

		// Track instruments by instance name, aggregating addresses
		seen := make(map[string]*Instrument)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				inst := entryToInstrument(entry, service)
				if inst == nil {
					continue
				}

				if existing, found := seen[inst.Name]; found {
					existing.Addresses = mergeAddresses(existing.Addresses, inst.Addresses)
					continue
				}

				seen[inst.Name] = inst
				select {
				case out <- inst:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					return
				}
				delete(seen, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	// Start browsing in background
	go func() {
		_ = zeroconf.Browse(ctx, service, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindFirst returns the first instrument advertising the service, waiting
// at most the configured browse timeout. Returns ErrNotFound on timeout.
func (b *Browser) FindFirst(ctx context.Context, service string) (*Instrument, error) {
	ctx, cancel := context.WithTimeout(ctx, b.config.BrowseTimeout)
	defer cancel()

	found, err := b.Browse(ctx, service)
	if err != nil {
		return nil, err
	}

	select {
	case inst, ok := <-found:
		if !ok {
			return nil, ErrNotFound
		}
		return inst, nil
	case <-ctx.Done():
		return nil, ErrNotFound
	}
}

// browserOptions returns zeroconf client options based on config.
func (b *Browser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToInstrument converts a zeroconf entry to an Instrument.
func entryToInstrument(entry *zeroconf.ServiceEntry, service string) *Instrument {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Instrument{
		Name:      entry.Instance,
		Host:      entry.HostName,
		Addresses: addrs,
		Port:      uint16(entry.Port),
		Service:   service,
		TXT:       ParseTXT(entry.Text),
	}
}

// mergeAddresses appends addresses from b not already present in a.
func mergeAddresses(a, b []string) []string {
	present := make(map[string]bool, len(a))
	for _, addr := range a {
		present[addr] = true
	}
	for _, addr := range b {
		if !present[addr] {
			a = append(a, addr)
		}
	}
	return a
}
