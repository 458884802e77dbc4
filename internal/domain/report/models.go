package report

import (
	"time"

	"storeops/internal/domain/money"
)

// Period bounds a report. A zero From or To leaves that side open.
type Period struct {
	From time.Time
	To   time.Time
}

// ProfitLine is one currency's slice of a store profit report.
type ProfitLine struct {
	Currency         money.Currency `json:"currency"`
	Sales            int64          `json:"sales"`
	Expenses         int64          `json:"expenses"`
	Payroll          int64          `json:"payroll"`
	DeliveryExpenses int64          `json:"deliveryExpenses"`
	Profit           int64          `json:"profit"`
	Formatted        string         `json:"formatted"`
}

// StoreProfit is the full per-currency profit report for one store.
type StoreProfit struct {
	StoreID     string       `json:"storeId"`
	StoreName   string       `json:"storeName"`
	From        time.Time    `json:"from,omitempty"`
	To          time.Time    `json:"to,omitempty"`
	Lines       []ProfitLine `json:"lines"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// Balance is one employee's earned/paid/remaining position in one currency.
type Balance struct {
	Currency  money.Currency `json:"currency"`
	Earned    int64          `json:"earned"`
	Paid      int64          `json:"paid"`
	Remaining int64          `json:"remaining"`
}

// EmployeeBalance carries all currency positions for one employee.
type EmployeeBalance struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Balances     []Balance `json:"balances"`
}
