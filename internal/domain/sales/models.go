package sales

import (
	"time"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
)

// Sale is one store-day-currency row. Uniqueness over (store, currency,
// sale date) is enforced by the database, so re-submitting a day replaces
// the previous figures instead of duplicating them.
type Sale struct {
	ID         string                `json:"id"`
	StoreID    string                `json:"storeId"`
	SaleDate   time.Time             `json:"saleDate"`
	Currency   money.Currency        `json:"currency"`
	Channels   ledger.ChannelAmounts `json:"channels"`
	Total      int64                 `json:"total"`
	CashInTill int64                 `json:"cashInTill"`
	Difference int64                 `json:"difference"`
	Notes      string                `json:"notes,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

type UpsertInput struct {
	StoreID    string
	SaleDate   time.Time
	Currency   string
	Channels   ledger.ChannelAmounts
	CashInTill int64
	Notes      string
}

type Filter struct {
	StoreID  string
	Currency string
	From     time.Time
	To       time.Time
}
