package channel

import (
	"context"
	"fmt"

	"github.com/scpi-drivers/kepco-go/pkg/scpi"
)

// Access flags for channels.
type Access uint8

const (
	// AccessRead allows reading the channel.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing the channel.
	AccessWrite

	// AccessReadWrite allows both.
	AccessReadWrite = AccessRead | AccessWrite
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Channel describes one named mapping between a driver-side value and the
// instrument's command strings. Channels are immutable after registration.
type Channel struct {
	// Name is the driver-side channel name.
	Name string

	// Query is the SCPI query string. Empty for write-only channels.
	Query string

	// SetFormat is the set-command template with exactly one formatting
	// verb for the wire value (e.g. "SOUR:VOLT %g", "OUTP %d").
	// Empty for read-only channels.
	SetFormat string

	// Validator checks a candidate value and maps it to the wire value
	// substituted into SetFormat. Nil passes the value through unchecked.
	Validator Validator

	// Parse transforms the raw response of Query into the channel's value.
	// Nil defaults to ParseString.
	Parse ParseFunc
}

// Access returns the access flags implied by the channel's command strings.
func (c *Channel) Access() Access {
	var a Access
	if c.Query != "" {
		a |= AccessRead
	}
	if c.SetFormat != "" {
		a |= AccessWrite
	}
	return a
}

// Registry is an ordered, name-keyed set of channels. It is fixed at
// driver-definition time; every driver instance exposes the same set.
type Registry struct {
	order    []string
	channels map[string]*Channel
}

// NewRegistry builds a registry from the given channels.
// It panics on a duplicate or empty name: the channel table is a static
// schema, and a malformed one is a programming error.
func NewRegistry(channels ...*Channel) *Registry {
	r := &Registry{
		channels: make(map[string]*Channel, len(channels)),
	}
	for _, c := range channels {
		if c.Name == "" {
			panic("channel: registered channel with empty name")
		}
		if _, exists := r.channels[c.Name]; exists {
			panic(fmt.Sprintf("channel: duplicate channel %q", c.Name))
		}
		r.channels[c.Name] = c
		r.order = append(r.order, c.Name)
	}
	return r
}

// Get returns the named channel.
func (r *Registry) Get(name string) (*Channel, error) {
	c, ok := r.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return c, nil
}

// Names returns the channel names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Read issues the channel's query and returns the parsed response.
// There is no caching: every call is a fresh round trip.
func (r *Registry) Read(ctx context.Context, t scpi.Transport, name string) (any, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if !c.Access().CanRead() {
		return nil, fmt.Errorf("%w: %q", ErrNotReadable, name)
	}

	resp, err := t.Query(ctx, c.Query)
	if err != nil {
		return nil, err
	}

	parse := c.Parse
	if parse == nil {
		parse = ParseString
	}
	return parse(resp)
}

// ReadFloat reads the channel and asserts a float64 value.
func (r *Registry) ReadFloat(ctx context.Context, t scpi.Transport, name string) (float64, error) {
	v, err := r.Read(ctx, t, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("channel %q: response is %T, not float64", name, v)
	}
	return f, nil
}

// ReadFloats reads the channel and asserts a []float64 value.
func (r *Registry) ReadFloats(ctx context.Context, t scpi.Transport, name string) ([]float64, error) {
	v, err := r.Read(ctx, t, name)
	if err != nil {
		return nil, err
	}
	fs, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("channel %q: response is %T, not []float64", name, v)
	}
	return fs, nil
}

// Write validates the value, formats the set command and sends it.
// Validation failures are raised before any wire traffic; no read-back
// confirmation is performed.
func (r *Registry) Write(ctx context.Context, t scpi.Transport, name string, value any) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}
	if !c.Access().CanWrite() {
		return fmt.Errorf("%w: %q", ErrNotWritable, name)
	}

	wire := value
	if c.Validator != nil {
		wire, err = c.Validator.Validate(c.Name, value)
		if err != nil {
			return err
		}
	}

	return t.Write(ctx, fmt.Sprintf(c.SetFormat, wire))
}
