package delivery

import (
	"time"

	"storeops/internal/domain/money"
)

// Record is one driver's shift: how long they worked, how many drops they
// made, and what the store owes them for it.
type Record struct {
	ID                 string         `json:"id"`
	DriverID           string         `json:"driverId"`
	StoreID            string         `json:"storeId"`
	DeliveryDate       time.Time      `json:"deliveryDate"`
	CheckIn            time.Time      `json:"checkIn"`
	CheckOut           time.Time      `json:"checkOut"`
	HoursWorked        float64        `json:"hoursWorked"`
	NumberOfDeliveries int            `json:"numberOfDeliveries"`
	Currency           money.Currency `json:"currency"`
	ExpenseAmount      int64          `json:"expenseAmount"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type CreateInput struct {
	DriverID           string
	StoreID            string
	CheckIn            time.Time
	CheckOut           time.Time
	NumberOfDeliveries int
	Currency           string
	ExpenseAmount      int64
	Notes              string
}

type Filter struct {
	StoreID  string
	DriverID string
	From     time.Time
	To       time.Time
}
