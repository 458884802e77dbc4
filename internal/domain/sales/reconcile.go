package sales

// Reconciliation status labels shown to the back office verbatim.
const (
	StatusBalanced    = "balanced"
	StatusSalesExceed = "sales recorded exceed cash in till"
	StatusCashExceeds = "cash in till exceeds sales recorded"
)

// Reconciliation compares the recorded channel total against the counted
// till for one sale.
type Reconciliation struct {
	Total      int64  `json:"total"`
	CashInTill int64  `json:"cashInTill"`
	Difference int64  `json:"difference"`
	Status     string `json:"status"`
}

// Reconcile computes difference = total - cashInTill and classifies it.
func Reconcile(total, cashInTill int64) Reconciliation {
	difference := total - cashInTill
	status := StatusBalanced
	switch {
	case difference > 0:
		status = StatusSalesExceed
	case difference < 0:
		status = StatusCashExceeds
	}
	return Reconciliation{
		Total:      total,
		CashInTill: cashInTill,
		Difference: difference,
		Status:     status,
	}
}
