package bhk

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Ramp parameters.
const (
	// RampInterval is the pause after each current write during a ramp.
	RampInterval = 100 * time.Millisecond

	// DefaultRampStep is a conservative step size in amps.
	DefaultRampStep = 0.1
)

// InvalidStepError reports a non-positive or non-finite ramp step.
// It is raised before any wire traffic.
type InvalidStepError struct {
	// Step is the rejected step size in amps.
	Step float64
}

// Error returns the error message.
func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("bhk: ramp step must be a positive finite value, got %g", e.Step)
}

// RampToCurrent moves the current setpoint gradually from its present value
// to target, writing approximately step amps per tick with a RampInterval
// pause after each write.
//
// The setpoint is first read back from the instrument; the ramp then writes
// n = round(|present-target|/step)+1 evenly spaced values ending exactly at
// target. When the setpoint already equals target, a single (no-op) write
// and pause still occur. Cancelling the context between steps abandons the
// ramp, leaving the last written value in effect; a failed step likewise
// leaves any earlier steps applied.
func (b *BHK) RampToCurrent(ctx context.Context, target, step float64) error {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return &InvalidStepError{Step: step}
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return fmt.Errorf("bhk: ramp target must be finite, got %g", target)
	}

	present, err := b.Current(ctx)
	if err != nil {
		return err
	}

	n := int(math.Round(math.Abs(present-target)/step)) + 1
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Inclusive linear spacing: the last value is exactly target.
		v := target
		if i < n-1 {
			v = present + (target-present)*float64(i)/float64(n-1)
		}

		if err := b.SetCurrent(ctx, v); err != nil {
			return err
		}
		b.sleep(RampInterval)
	}
	return nil
}

// RampToZero gradually decreases the current setpoint to zero.
func (b *BHK) RampToZero(ctx context.Context, step float64) error {
	return b.RampToCurrent(ctx, 0, step)
}

// Shutdown disables the output. The current setpoint is deliberately left
// untouched; use ShutdownWithRamp to settle at 0 A first.
func (b *BHK) Shutdown(ctx context.Context) error {
	return b.Disable(ctx)
}

// ShutdownWithRamp ramps the current setpoint to zero, then disables the
// output.
func (b *BHK) ShutdownWithRamp(ctx context.Context, step float64) error {
	if err := b.RampToZero(ctx, step); err != nil {
		return err
	}
	return b.Disable(ctx)
}
