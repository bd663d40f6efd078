package bhk

import (
	"fmt"
	"strings"

	"github.com/scpi-drivers/kepco-go/pkg/channel"
)

// DisplayName is the fixed display name for this instrument class.
const DisplayName = "Kepco BHK Series DC source"

// Hardware ranges of the BHK-MG 300-0.6 model this driver targets.
const (
	// VoltageMin and VoltageMax bound the voltage setpoint in volts.
	VoltageMin = 0.0
	VoltageMax = 300.0

	// CurrentMin and CurrentMax bound the current setpoint in amps.
	CurrentMin = 0.0
	CurrentMax = 0.6
)

// Channel names.
const (
	// ChanID is the instrument identification string.
	ChanID = "id"

	// ChanOutput is the output enable switch.
	ChanOutput = "output"

	// ChanVoltage is the voltage setpoint in volts.
	ChanVoltage = "voltage"

	// ChanCurrent is the current setpoint in amps.
	ChanCurrent = "current"

	// ChanMaxVoltage is the voltage limit, persisted by the instrument
	// firmware to flash memory.
	ChanMaxVoltage = "max_voltage"

	// ChanMaxCurrent is the current limit, persisted by the instrument
	// firmware to flash memory.
	ChanMaxCurrent = "max_current"

	// ChanMeasureVoltage is the instantaneous measured output voltage.
	ChanMeasureVoltage = "measure_voltage"

	// ChanMeasureCurrent is the instantaneous measured output current.
	ChanMeasureCurrent = "measure_current"

	// ChanMeasureVI measures voltage and current in one compound query.
	ChanMeasureVI = "measure_vi"

	// ChanOperationCondition is the raw Operation Condition Register.
	ChanOperationCondition = "rsd"

	// ChanMode reports the active regulation mode (VOLT or CURR).
	ChanMode = "mode"
)

// outputTokens maps the accepted output values to their wire tokens.
// The instrument expects a plain decimal 0 or 1.
var outputTokens = channel.Tokens{
	{In: true, Wire: 1},
	{In: "on", Wire: 1},
	{In: "ON", Wire: 1},
	{In: false, Wire: 0},
	{In: "off", Wire: 0},
	{In: "OFF", Wire: 0},
}

// parseOutputState maps the instrument's 0/1 response back to a bool.
func parseOutputState(resp string) (any, error) {
	switch strings.TrimSpace(resp) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return nil, fmt.Errorf("malformed output state %q", resp)
	}
}

// newRegistry declares the BHK channel table. The schema is fixed: every
// driver instance exposes exactly these channels.
func newRegistry() *channel.Registry {
	return channel.NewRegistry(
		&channel.Channel{
			Name:  ChanID,
			Query: "*IDN?",
		},
		&channel.Channel{
			Name:      ChanOutput,
			Query:     "OUTP?",
			SetFormat: "OUTP %d",
			Validator: outputTokens,
			Parse:     parseOutputState,
		},
		&channel.Channel{
			Name:      ChanVoltage,
			Query:     "SOUR:VOLT?",
			SetFormat: "SOUR:VOLT %g",
			Validator: channel.Range{Min: VoltageMin, Max: VoltageMax},
			Parse:     channel.ParseFloat,
		},
		&channel.Channel{
			Name:      ChanCurrent,
			Query:     "SOUR:CURR?",
			SetFormat: "SOUR:CURR %g",
			Validator: channel.Range{Min: CurrentMin, Max: CurrentMax},
			Parse:     channel.ParseFloat,
		},
		&channel.Channel{
			Name:      ChanMaxVoltage,
			Query:     "SOUR:VOLT:LIM?",
			SetFormat: "SOUR:VOLT:LIM %g",
			Validator: channel.Range{Min: VoltageMin, Max: VoltageMax},
			Parse:     channel.ParseFloat,
		},
		&channel.Channel{
			Name:  ChanMaxCurrent,
			Query: "SOUR:CURR:LIM?",
			// The limit is queried and set through different subsystems.
			SetFormat: "SOUR:CURR:MA %g",
			Validator: channel.Range{Min: CurrentMin, Max: CurrentMax},
			Parse:     channel.ParseFloat,
		},
		&channel.Channel{
			Name:  ChanMeasureVoltage,
			Query: "MEAS:VOLT?",
			Parse: channel.ParseFloat,
		},
		&channel.Channel{
			Name:  ChanMeasureCurrent,
			Query: "MEAS:CURR?",
			Parse: channel.ParseFloat,
		},
		&channel.Channel{
			Name:  ChanMeasureVI,
			Query: "MEAS:VOLT?; CURR?",
			Parse: channel.FloatList(";"),
		},
		&channel.Channel{
			Name:  ChanOperationCondition,
			Query: "STAT:OPER:COND?",
			Parse: channel.ParseFloat,
		},
		&channel.Channel{
			Name:  ChanMode,
			Query: "FUNC:MODE?",
		},
	)
}
