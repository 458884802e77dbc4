package expense

import (
	"time"

	"storeops/internal/domain/money"
)

const (
	StatusRaised = "raised"
	StatusPaid   = "paid"
)

type Expense struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"storeId"`
	VendorID    string         `json:"vendorId,omitempty"`
	Amount      int64          `json:"amount"`
	Currency    money.Currency `json:"currency"`
	Status      string         `json:"status"`
	ExpenseDate time.Time      `json:"expenseDate"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CreateInput struct {
	StoreID     string
	VendorID    string
	Amount      int64
	Currency    string
	ExpenseDate time.Time
	Notes       string
}

type Filter struct {
	StoreID string
	Status  string
	From    time.Time
	To      time.Time
}
