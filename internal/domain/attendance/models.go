package attendance

import (
	"time"

	"storeops/internal/domain/money"
)

type Record struct {
	ID          string         `json:"id"`
	EmployeeID  string         `json:"employeeId"`
	StoreID     string         `json:"storeId"`
	CheckIn     time.Time      `json:"checkIn"`
	CheckOut    time.Time      `json:"checkOut"`
	Currency    money.Currency `json:"currency"`
	HoursWorked float64        `json:"hoursWorked"`
	AmountToPay int64          `json:"amountToPay"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CreateInput struct {
	EmployeeID string
	StoreID    string
	CheckIn    time.Time
	CheckOut   time.Time
	Currency   string
	Notes      string
}

type UpdateInput struct {
	CheckIn  time.Time
	CheckOut time.Time
	Currency string
	Notes    string
}

type Filter struct {
	StoreID    string
	EmployeeID string
	From       time.Time
	To         time.Time
}
