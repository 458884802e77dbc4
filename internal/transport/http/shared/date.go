package shared

import (
	"net/http"
	"time"

	"storeops/internal/domain/report"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParsePeriod reads optional from/to query parameters. On a malformed date
// it writes the validation response and returns false.
func ParsePeriod(w http.ResponseWriter, r *http.Request, requestID string) (report.Period, bool) {
	v := NewValidator()
	var period report.Period
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, ok := v.Date("from", raw); ok {
			period.From = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, ok := v.Date("to", raw); ok {
			period.To = parsed
		}
	}
	v.DateOrder("from", period.From, "to", period.To)
	if v.Reject(w, requestID) {
		return report.Period{}, false
	}
	return period, true
}
