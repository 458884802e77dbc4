// Package validation carries the user-visible input errors the UI renders
// verbatim. Every guard names the offending field so the client can attach
// the message to the right input.
package validation

import (
	"errors"
	"fmt"
	"time"
)

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func NonNegative(field string, value int64) error {
	if value < 0 {
		return Errorf(field, "%s must not be negative", field)
	}
	return nil
}

func Positive(field string, value int64) error {
	if value <= 0 {
		return Errorf(field, "%s must be greater than zero", field)
	}
	return nil
}

func PositiveInt(field string, value int) error {
	if value <= 0 {
		return Errorf(field, "%s must be a positive integer", field)
	}
	return nil
}

func DateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return Errorf("checkOut", "Check-out time must be after check-in time")
	}
	return nil
}
