package channel

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestRangeValidate(t *testing.T) {
	r := Range{Min: 0, Max: 300}

	t.Run("Inside", func(t *testing.T) {
		for _, v := range []float64{0, 150, 300} {
			wire, err := r.Validate("voltage", v)
			if err != nil {
				t.Fatalf("Validate(%g) failed: %v", v, err)
			}
			if wire != v {
				t.Errorf("expected wire value %g, got %v", v, wire)
			}
		}
	})

	t.Run("Outside", func(t *testing.T) {
		for _, v := range []float64{-1, 301, math.NaN()} {
			_, err := r.Validate("voltage", v)
			var rangeErr *OutOfRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("Validate(%g): expected *OutOfRangeError, got %v", v, err)
			}
			if rangeErr.Channel != "voltage" {
				t.Errorf("expected channel name in error, got %q", rangeErr.Channel)
			}
		}
	})

	t.Run("IntegerInput", func(t *testing.T) {
		wire, err := r.Validate("voltage", 12)
		if err != nil {
			t.Fatalf("Validate(12) failed: %v", err)
		}
		if wire != 12.0 {
			t.Errorf("expected 12.0, got %v", wire)
		}
	})

	t.Run("NonNumeric", func(t *testing.T) {
		_, err := r.Validate("voltage", "twelve")
		var valErr *InvalidValueError
		if !errors.As(err, &valErr) {
			t.Errorf("expected *InvalidValueError, got %v", err)
		}
	})

	t.Run("ErrorMessage", func(t *testing.T) {
		_, err := r.Validate("voltage", 301.0)
		msg := err.Error()
		for _, want := range []string{"voltage", "301", "[0, 300]"} {
			if !strings.Contains(msg, want) {
				t.Errorf("error message %q missing %q", msg, want)
			}
		}
	})
}

func TestTokensValidate(t *testing.T) {
	tokens := Tokens{
		{In: true, Wire: 1},
		{In: "on", Wire: 1},
		{In: "ON", Wire: 1},
		{In: false, Wire: 0},
		{In: "off", Wire: 0},
		{In: "OFF", Wire: 0},
	}

	t.Run("Accepted", func(t *testing.T) {
		cases := []struct {
			in   any
			wire any
		}{
			{true, 1}, {"on", 1}, {"ON", 1},
			{false, 0}, {"off", 0}, {"OFF", 0},
		}
		for _, tc := range cases {
			wire, err := tokens.Validate("output", tc.in)
			if err != nil {
				t.Fatalf("Validate(%v) failed: %v", tc.in, err)
			}
			if wire != tc.wire {
				t.Errorf("Validate(%v): expected wire %v, got %v", tc.in, tc.wire, wire)
			}
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		_, err := tokens.Validate("output", "maybe")
		var valErr *InvalidValueError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *InvalidValueError, got %v", err)
		}
		if valErr.Channel != "output" {
			t.Errorf("expected channel name in error, got %q", valErr.Channel)
		}
		if len(valErr.Accepted) != 6 {
			t.Errorf("expected 6 accepted tokens, got %v", valErr.Accepted)
		}
	})

	t.Run("CaseNotFolded", func(t *testing.T) {
		// Only the declared spellings are accepted.
		if _, err := tokens.Validate("output", "On"); err == nil {
			t.Error("expected rejection of undeclared spelling")
		}
	})
}
