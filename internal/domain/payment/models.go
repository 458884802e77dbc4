package payment

import (
	"time"

	"storeops/internal/domain/money"
)

const (
	MethodCash    = "cash"
	MethodAccount = "account"
)

// Payment is a wage disbursement to an employee, counted against their
// attendance earnings in the same currency.
type Payment struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employeeId"`
	AmountPaid    int64          `json:"amountPaid"`
	Currency      money.Currency `json:"currency"`
	PaymentMethod string         `json:"paymentMethod"`
	PaidDate      time.Time      `json:"paidDate"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID    string
	AmountPaid    int64
	Currency      string
	PaymentMethod string
	PaidDate      time.Time
	Notes         string
}

type Filter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}
