package bhk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scpi-drivers/kepco-go/pkg/channel"
	"github.com/scpi-drivers/kepco-go/pkg/scpi"
	"github.com/scpi-drivers/kepco-go/pkg/trace"
)

// Mode is the supply's active regulation mode.
type Mode uint8

const (
	// ModeUnknown indicates an unrecognized mode response.
	ModeUnknown Mode = iota

	// ModeConstantVoltage indicates voltage regulation (VOLT).
	ModeConstantVoltage

	// ModeConstantCurrent indicates current regulation (CURR).
	ModeConstantCurrent
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeConstantVoltage:
		return "VOLT"
	case ModeConstantCurrent:
		return "CURR"
	default:
		return "UNKNOWN"
	}
}

// Options configure a driver instance.
type Options struct {
	// Transport overrides dialing: the driver wraps this connection
	// instead of opening one. Used for tests and gateway transports.
	Transport scpi.Transport

	// Logger receives trace events from the dialed connection.
	// Ignored when Transport is set.
	Logger trace.Logger

	// ConnectTimeout, ReadTimeout and WriteTimeout are passed through to
	// the dialed connection. Zero values use the transport defaults.
	// Ignored when Transport is set.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Option mutates Options.
type Option func(*Options)

// WithLogger attaches a trace logger to the dialed connection.
func WithLogger(l trace.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTimeouts sets the connection timeouts.
func WithTimeouts(connect, read, write time.Duration) Option {
	return func(o *Options) {
		o.ConnectTimeout = connect
		o.ReadTimeout = read
		o.WriteTimeout = write
	}
}

// WithTransport wraps an existing transport instead of dialing.
func WithTransport(t scpi.Transport) Option {
	return func(o *Options) { o.Transport = t }
}

// BHK drives one Kepco BHK series DC power supply over a SCPI transport.
//
// The driver owns its transport exclusively and is otherwise stateless:
// controlled and measured values live in the instrument. It performs no
// internal locking; callers sharing an instance across goroutines must
// serialize access themselves.
type BHK struct {
	transport scpi.Transport
	registry  *channel.Registry

	// ownsTransport is true when Open dialed the connection, in which
	// case Close tears it down.
	ownsTransport bool

	// sleep is replaced in ramp tests.
	sleep func(time.Duration)
}

// Open connects to the supply at the given resource address.
// No instrument communication occurs beyond opening the connection.
func Open(ctx context.Context, resource string, opts ...Option) (*BHK, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	if o.Transport != nil {
		b := New(o.Transport)
		b.ownsTransport = false
		return b, nil
	}

	cfg := scpi.DefaultConfig()
	cfg.Logger = o.Logger
	if o.ConnectTimeout > 0 {
		cfg.ConnectTimeout = o.ConnectTimeout
	}
	if o.ReadTimeout > 0 {
		cfg.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		cfg.WriteTimeout = o.WriteTimeout
	}

	conn, err := scpi.Dial(ctx, resource, cfg)
	if err != nil {
		return nil, err
	}

	b := New(conn)
	b.ownsTransport = true
	return b, nil
}

// New wraps an existing transport. The caller retains ownership of the
// transport; Close does not tear it down.
func New(t scpi.Transport) *BHK {
	return &BHK{
		transport: t,
		registry:  newRegistry(),
		sleep:     time.Sleep,
	}
}

// Name returns the fixed instrument display name.
func (b *BHK) Name() string {
	return DisplayName
}

// Close closes the underlying connection if the driver opened it.
func (b *BHK) Close() error {
	if !b.ownsTransport {
		return nil
	}
	return b.transport.Close()
}

// Channels returns the channel names exposed by this driver, in
// declaration order.
func (b *BHK) Channels() []string {
	return b.registry.Names()
}

// Get reads the named channel. Every call is a fresh round trip.
func (b *BHK) Get(ctx context.Context, name string) (any, error) {
	return b.registry.Read(ctx, b.transport, name)
}

// Set validates and writes the named channel. Validation failures are
// raised before any wire traffic; no read-back confirmation is performed.
func (b *BHK) Set(ctx context.Context, name string, value any) error {
	return b.registry.Write(ctx, b.transport, name, value)
}

// ID reads the instrument identification string.
func (b *BHK) ID(ctx context.Context) (string, error) {
	return b.getString(ctx, ChanID)
}

// Output reads the output enable state.
func (b *BHK) Output(ctx context.Context) (bool, error) {
	v, err := b.Get(ctx, ChanOutput)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// SetOutput switches the output. Accepted values are true, "on", "ON"
// (enable) and false, "off", "OFF" (disable); anything else fails with
// *channel.InvalidValueError before any wire traffic.
func (b *BHK) SetOutput(ctx context.Context, value any) error {
	return b.Set(ctx, ChanOutput, value)
}

// Enable turns the output on.
func (b *BHK) Enable(ctx context.Context) error {
	return b.SetOutput(ctx, true)
}

// Disable turns the output off.
func (b *BHK) Disable(ctx context.Context) error {
	return b.SetOutput(ctx, false)
}

// Voltage reads the voltage setpoint in volts.
func (b *BHK) Voltage(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanVoltage)
}

// SetVoltage sets the voltage setpoint in volts (0-300).
func (b *BHK) SetVoltage(ctx context.Context, volts float64) error {
	return b.Set(ctx, ChanVoltage, volts)
}

// Current reads the current setpoint in amps.
func (b *BHK) Current(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanCurrent)
}

// SetCurrent sets the current setpoint in amps (0-0.6).
func (b *BHK) SetCurrent(ctx context.Context, amps float64) error {
	return b.Set(ctx, ChanCurrent, amps)
}

// MaxVoltage reads the voltage limit in volts.
func (b *BHK) MaxVoltage(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanMaxVoltage)
}

// SetMaxVoltage sets the voltage limit in volts (0-300).
// The instrument persists the limit to flash memory.
func (b *BHK) SetMaxVoltage(ctx context.Context, volts float64) error {
	return b.Set(ctx, ChanMaxVoltage, volts)
}

// MaxCurrent reads the current limit in amps.
func (b *BHK) MaxCurrent(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanMaxCurrent)
}

// SetMaxCurrent sets the current limit in amps (0-0.6).
// The instrument persists the limit to flash memory.
func (b *BHK) SetMaxCurrent(ctx context.Context, amps float64) error {
	return b.Set(ctx, ChanMaxCurrent, amps)
}

// MeasureVoltage measures the actual output voltage in volts.
func (b *BHK) MeasureVoltage(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanMeasureVoltage)
}

// MeasureCurrent measures the actual output current in amps.
func (b *BHK) MeasureCurrent(ctx context.Context) (float64, error) {
	return b.registry.ReadFloat(ctx, b.transport, ChanMeasureCurrent)
}

// MeasureVI measures the actual output voltage and current in one
// compound query.
func (b *BHK) MeasureVI(ctx context.Context) (volts, amps float64, err error) {
	vi, err := b.registry.ReadFloats(ctx, b.transport, ChanMeasureVI)
	if err != nil {
		return 0, 0, err
	}
	if len(vi) != 2 {
		return 0, 0, fmt.Errorf("bhk: malformed V/I response, got %d values", len(vi))
	}
	return vi[0], vi[1], nil
}

// OperationCondition reads the raw Operation Condition Register value.
func (b *BHK) OperationCondition(ctx context.Context) (int, error) {
	v, err := b.registry.ReadFloat(ctx, b.transport, ChanOperationCondition)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Mode reports whether the supply is regulating voltage or current.
func (b *BHK) Mode(ctx context.Context) (Mode, error) {
	s, err := b.getString(ctx, ChanMode)
	if err != nil {
		return ModeUnknown, err
	}
	switch strings.ToUpper(s) {
	case "VOLT":
		return ModeConstantVoltage, nil
	case "CURR":
		return ModeConstantCurrent, nil
	default:
		return ModeUnknown, fmt.Errorf("bhk: unrecognized mode %q", s)
	}
}

func (b *BHK) getString(ctx context.Context, name string) (string, error) {
	v, err := b.Get(ctx, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("channel %q: response is %T, not string", name, v)
	}
	return s, nil
}
