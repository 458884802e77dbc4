package money

import "testing"

func TestRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 0.1, 1, 12.34, 120.00, 9999.99} {
		minor := ToMinorUnits(amount)
		if back := FromMinorUnits(minor); back != amount {
			t.Fatalf("round trip of %v gave %v (minor %d)", amount, back, minor)
		}
	}
}

func TestToMinorUnitsRounds(t *testing.T) {
	if got := ToMinorUnits(10.005); got != 1001 {
		t.Fatalf("expected 1001, got %d", got)
	}
	if got := ToMinorUnits(8 * 15.0); got != 12000 {
		t.Fatalf("expected 12000, got %d", got)
	}
}

func TestParse(t *testing.T) {
	if c, err := Parse(" gbp "); err != nil || c != GBP {
		t.Fatalf("expected GBP, got %v %v", c, err)
	}
	if _, err := Parse("USD"); err == nil {
		t.Fatal("expected error for USD")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		minor    int64
		currency Currency
		want     string
	}{
		{0, EUR, "€0.00"},
		{12000, EUR, "€120.00"},
		{123456789, GBP, "£1,234,567.89"},
		{-1250, GBP, "-£12.50"},
		{5, EUR, "€0.05"},
	}
	for _, tc := range cases {
		if got := Format(tc.minor, tc.currency); got != tc.want {
			t.Fatalf("Format(%d, %s) = %q, want %q", tc.minor, tc.currency, got, tc.want)
		}
	}
}
