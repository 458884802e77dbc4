package org

import (
	"time"

	"storeops/internal/domain/money"
	"storeops/internal/domain/wage"
)

type Store struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	SupportedCurrencies []money.Currency `json:"supportedCurrencies"`
	DefaultCurrency     money.Currency   `json:"defaultCurrency"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// SupportsCurrency is the currency gate every transaction referencing this
// store must pass.
func (s Store) SupportsCurrency(currency money.Currency) bool {
	for _, supported := range s.SupportedCurrencies {
		if supported == currency {
			return true
		}
	}
	return false
}

type Employee struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"storeId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	WageType      wage.Type `json:"wageType"`
	HourlyRateEur *float64  `json:"hourlyRateEur,omitempty"`
	HourlyRateGbp *float64  `json:"hourlyRateGbp,omitempty"`
	DailyWageEur  *float64  `json:"dailyWageEur,omitempty"`
	DailyWageGbp  *float64  `json:"dailyWageGbp,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (e Employee) Rates() wage.Rates {
	return wage.Rates{
		HourlyEur: e.HourlyRateEur,
		HourlyGbp: e.HourlyRateGbp,
		DailyEur:  e.DailyWageEur,
		DailyGbp:  e.DailyWageGbp,
	}
}

type Driver struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
