package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency is one of the two currencies the business trades in.
type Currency string

const (
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// Currencies lists every supported currency.
func Currencies() []Currency {
	return []Currency{EUR, GBP}
}

func Parse(value string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(value))) {
	case EUR:
		return EUR, nil
	case GBP:
		return GBP, nil
	}
	return "", fmt.Errorf("currency must be EUR or GBP, got %q", value)
}

func (c Currency) Symbol() string {
	switch c {
	case GBP:
		return "£"
	default:
		return "€"
	}
}

// ToMinorUnits converts a decimal amount to integer cents/pence. All input
// boundaries must go through this so later sums never accumulate float drift.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts cents/pence back to a decimal amount, for display.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// Format renders minor units as a currency string, e.g. €1,234.56.
func Format(minor int64, currency Currency) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	whole := minor / 100
	cents := minor % 100
	return fmt.Sprintf("%s%s%s.%02d", sign, currency.Symbol(), groupThousands(whole), cents)
}

func groupThousands(value int64) string {
	digits := strconv.FormatInt(value, 10)
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}
