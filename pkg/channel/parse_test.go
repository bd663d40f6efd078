package channel

import "testing"

func TestParseString(t *testing.T) {
	v, err := ParseString("  VOLT \r")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if v != "VOLT" {
		t.Errorf("expected VOLT, got %q", v)
	}
}

func TestParseFloat(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		v, err := ParseFloat("12.5")
		if err != nil {
			t.Fatalf("ParseFloat failed: %v", err)
		}
		if v != 12.5 {
			t.Errorf("expected 12.5, got %v", v)
		}
	})

	t.Run("Exponent", func(t *testing.T) {
		v, err := ParseFloat(" 6.0E-1 ")
		if err != nil {
			t.Fatalf("ParseFloat failed: %v", err)
		}
		if v != 0.6 {
			t.Errorf("expected 0.6, got %v", v)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := ParseFloat("twelve"); err == nil {
			t.Error("expected error for malformed response")
		}
	})
}

func TestFloatList(t *testing.T) {
	parse := FloatList(";")

	t.Run("Pair", func(t *testing.T) {
		v, err := parse("12.5;0.3")
		if err != nil {
			t.Fatalf("FloatList failed: %v", err)
		}
		vs := v.([]float64)
		if len(vs) != 2 || vs[0] != 12.5 || vs[1] != 0.3 {
			t.Errorf("expected [12.5 0.3], got %v", vs)
		}
	})

	t.Run("SpacedParts", func(t *testing.T) {
		v, err := parse("12.5; 0.3")
		if err != nil {
			t.Fatalf("FloatList failed: %v", err)
		}
		vs := v.([]float64)
		if vs[1] != 0.3 {
			t.Errorf("expected 0.3, got %v", vs[1])
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := parse("12.5;x"); err == nil {
			t.Error("expected error for malformed part")
		}
	})
}
