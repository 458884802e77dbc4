// Package ledger folds homogeneous record collections into per-currency
// aggregates. Folds are plain commutative sums, so input order never changes
// a result. Amounts are always minor units; a currency missing from one
// category contributes zero, it never drops out of the union.
package ledger

import "storeops/internal/domain/money"

type AmountEntry struct {
	Currency money.Currency
	Amount   int64
}

// FoldAmounts sums amounts per currency.
func FoldAmounts(entries []AmountEntry) map[money.Currency]int64 {
	totals := map[money.Currency]int64{}
	for _, entry := range entries {
		totals[entry.Currency] += entry.Amount
	}
	return totals
}

type AttendanceEntry struct {
	Currency money.Currency
	Hours    float64
	Amount   int64
}

type AttendanceTotals struct {
	Hours   float64 `json:"hours"`
	Amount  int64   `json:"amount"`
	Records int     `json:"records"`
}

func FoldAttendance(entries []AttendanceEntry) map[money.Currency]AttendanceTotals {
	totals := map[money.Currency]AttendanceTotals{}
	for _, entry := range entries {
		bucket := totals[entry.Currency]
		bucket.Hours += entry.Hours
		bucket.Amount += entry.Amount
		bucket.Records++
		totals[entry.Currency] = bucket
	}
	return totals
}

// ChannelAmounts is the per-channel breakdown of one day's sales.
type ChannelAmounts struct {
	Cash       int64 `json:"cash"`
	Online     int64 `json:"online"`
	Delivery   int64 `json:"delivery"`
	JustEat    int64 `json:"justEat"`
	MyLocal    int64 `json:"mylocal"`
	CreditCard int64 `json:"creditCard"`
	Deliveroo  int64 `json:"deliveroo"`
	UberEats   int64 `json:"uberEats"`
}

func (c ChannelAmounts) Sum() int64 {
	return c.Cash + c.Online + c.Delivery + c.JustEat + c.MyLocal + c.CreditCard + c.Deliveroo + c.UberEats
}

func (c ChannelAmounts) add(other ChannelAmounts) ChannelAmounts {
	c.Cash += other.Cash
	c.Online += other.Online
	c.Delivery += other.Delivery
	c.JustEat += other.JustEat
	c.MyLocal += other.MyLocal
	c.CreditCard += other.CreditCard
	c.Deliveroo += other.Deliveroo
	c.UberEats += other.UberEats
	return c
}

type SaleEntry struct {
	Currency   money.Currency
	Channels   ChannelAmounts
	CashInTill int64
}

type SaleTotals struct {
	Channels   ChannelAmounts `json:"channels"`
	Total      int64          `json:"total"`
	CashInTill int64          `json:"cashInTill"`
	Difference int64          `json:"difference"`
	Days       int            `json:"days"`
}

func FoldSales(entries []SaleEntry) map[money.Currency]SaleTotals {
	totals := map[money.Currency]SaleTotals{}
	for _, entry := range entries {
		bucket := totals[entry.Currency]
		bucket.Channels = bucket.Channels.add(entry.Channels)
		bucket.Total += entry.Channels.Sum()
		bucket.CashInTill += entry.CashInTill
		bucket.Difference += entry.Channels.Sum() - entry.CashInTill
		bucket.Days++
		totals[entry.Currency] = bucket
	}
	return totals
}

type ExpenseEntry struct {
	Currency money.Currency
	Amount   int64
	Paid     bool
}

type ExpenseTotals struct {
	Total   int64 `json:"total"`
	Paid    int64 `json:"paid"`
	Pending int64 `json:"pending"`
}

// FoldExpenses splits expense totals into paid and pending buckets. The
// invariant paid+pending == total holds for every currency.
func FoldExpenses(entries []ExpenseEntry) map[money.Currency]ExpenseTotals {
	totals := map[money.Currency]ExpenseTotals{}
	for _, entry := range entries {
		bucket := totals[entry.Currency]
		bucket.Total += entry.Amount
		if entry.Paid {
			bucket.Paid += entry.Amount
		} else {
			bucket.Pending += entry.Amount
		}
		totals[entry.Currency] = bucket
	}
	return totals
}

// Remaining computes earned minus paid per currency over the union of both
// maps. There is no cross-currency netting: a EUR debt is never offset by a
// GBP payment.
func Remaining(earned, paid map[money.Currency]int64) map[money.Currency]int64 {
	remaining := map[money.Currency]int64{}
	for currency, amount := range earned {
		remaining[currency] = amount
	}
	for currency, amount := range paid {
		remaining[currency] -= amount
	}
	return remaining
}

type ProfitInput struct {
	Sales            map[money.Currency]int64
	Expenses         map[money.Currency]int64
	Payroll          map[money.Currency]int64
	DeliveryExpenses map[money.Currency]int64
}

// Profit computes sales - expenses - payroll - deliveryExpenses for every
// currency appearing in any category.
func Profit(input ProfitInput) map[money.Currency]int64 {
	profit := map[money.Currency]int64{}
	for currency, amount := range input.Sales {
		profit[currency] += amount
	}
	for currency, amount := range input.Expenses {
		profit[currency] -= amount
	}
	for currency, amount := range input.Payroll {
		profit[currency] -= amount
	}
	for currency, amount := range input.DeliveryExpenses {
		profit[currency] -= amount
	}
	return profit
}
