package mockinst

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/scpi-drivers/kepco-go/pkg/scpi"
)

// DefaultIdentification is the *IDN? response of the emulated supply.
const DefaultIdentification = "KEPCO,BHK-MG 300-0.6,A123456,1.81"

// Supply emulates a Kepco BHK power supply: setpoints written through the
// SCPI source commands are echoed back on the matching queries, and the
// measurement queries report the setpoints as if the load tracked them
// perfectly. Safe for concurrent use.
type Supply struct {
	mu sync.Mutex

	volt, curr float64
	maxV, maxC float64
	output     int
	mode       string

	writes []string
}

// NewSupply creates a supply with all setpoints at zero, limits at the
// hardware maxima and the output off.
func NewSupply() *Supply {
	return &Supply{maxV: 300, maxC: 0.6, mode: "VOLT"}
}

// SetMode sets the regulation mode reported by FUNC:MODE? ("VOLT" or "CURR").
func (s *Supply) SetMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Writes returns the non-query commands received so far, in order.
func (s *Supply) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}

// Query implements scpi.Transport.
func (s *Supply) Query(ctx context.Context, cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case "*IDN?":
		return DefaultIdentification, nil
	case "OUTP?":
		return strconv.Itoa(s.output), nil
	case "SOUR:VOLT?":
		return formatG(s.volt), nil
	case "SOUR:CURR?":
		return formatG(s.curr), nil
	case "SOUR:VOLT:LIM?":
		return formatG(s.maxV), nil
	case "SOUR:CURR:LIM?":
		return formatG(s.maxC), nil
	case "MEAS:VOLT?":
		return formatG(s.volt), nil
	case "MEAS:CURR?":
		return formatG(s.curr), nil
	case "MEAS:VOLT?; CURR?":
		return formatG(s.volt) + ";" + formatG(s.curr), nil
	case "STAT:OPER:COND?":
		return "0", nil
	case "FUNC:MODE?":
		return s.mode, nil
	default:
		return "", fmt.Errorf("mockinst: unrecognized query %q", cmd)
	}
}

// Write implements scpi.Transport.
func (s *Supply) Write(ctx context.Context, cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes = append(s.writes, cmd)

	verb, arg, ok := strings.Cut(cmd, " ")
	if !ok {
		return fmt.Errorf("mockinst: unrecognized command %q", cmd)
	}

	switch verb {
	case "OUTP":
		n, err := strconv.Atoi(arg)
		if err != nil || (n != 0 && n != 1) {
			return fmt.Errorf("mockinst: bad output token %q", arg)
		}
		s.output = n
		return nil
	case "SOUR:VOLT", "SOUR:CURR", "SOUR:VOLT:LIM", "SOUR:CURR:MA":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("mockinst: bad numeric token %q", arg)
		}
		switch verb {
		case "SOUR:VOLT":
			s.volt = f
		case "SOUR:CURR":
			s.curr = f
		case "SOUR:VOLT:LIM":
			s.maxV = f
		case "SOUR:CURR:MA":
			s.maxC = f
		}
		return nil
	default:
		return fmt.Errorf("mockinst: unrecognized command %q", cmd)
	}
}

// Close implements scpi.Transport.
func (s *Supply) Close() error {
	return nil
}

// formatG renders a float the way the driver's %g set commands do.
func formatG(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Compile-time interface satisfaction check.
var _ scpi.Transport = (*Supply)(nil)
