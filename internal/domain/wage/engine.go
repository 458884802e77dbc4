package wage

import (
	"storeops/internal/domain/money"
	"storeops/internal/domain/timeclock"
)

// Type selects how a worker is paid for a shift.
type Type string

const (
	TypeHourly Type = "hourly"
	TypeFixed  Type = "fixed"
)

func ParseType(value string) (Type, bool) {
	switch Type(value) {
	case TypeHourly:
		return TypeHourly, true
	case TypeFixed:
		return TypeFixed, true
	}
	return "", false
}

// Rates holds an employee's per-currency pay configuration. Hourly rates
// apply under TypeHourly, daily wages under TypeFixed. A nil entry means the
// currency is not configured for that employee.
type Rates struct {
	HourlyEur *float64
	HourlyGbp *float64
	DailyEur  *float64
	DailyGbp  *float64
}

func (r Rates) Hourly(currency money.Currency) *float64 {
	if currency == money.GBP {
		return r.HourlyGbp
	}
	return r.HourlyEur
}

func (r Rates) Daily(currency money.Currency) *float64 {
	if currency == money.GBP {
		return r.DailyGbp
	}
	return r.DailyEur
}

// Configured reports whether the rate relevant to the wage type is set for
// the given currency.
func Configured(wageType Type, rates Rates, currency money.Currency) bool {
	if wageType == TypeFixed {
		return rates.Daily(currency) != nil
	}
	return rates.Hourly(currency) != nil
}

// Compute returns the amount owed in minor units for a worked duration.
// Hourly pay is round(hours*rate*100); fixed pay is the daily wage times the
// day count derived from hours. Callers must reject non-positive hours
// before calling.
//
// NOTE: an unconfigured rate yields 0 rather than an error. That mirrors the
// historical behavior the back office depends on; callers should check
// Configured first and surface a warning when it returns false.
func Compute(wageType Type, rates Rates, hours float64, currency money.Currency) int64 {
	switch wageType {
	case TypeFixed:
		daily := rates.Daily(currency)
		if daily == nil {
			return 0
		}
		days := timeclock.DaysFromHours(hours)
		return money.ToMinorUnits(*daily * float64(days))
	default:
		rate := rates.Hourly(currency)
		if rate == nil {
			return 0
		}
		return money.ToMinorUnits(hours * *rate)
	}
}
