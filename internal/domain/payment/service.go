package payment

import (
	"context"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
)

type StoreAPI interface {
	Create(ctx context.Context, payment Payment) (string, error)
	List(ctx context.Context, filter Filter) ([]Payment, error)
}

type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
	GetEmployee(ctx context.Context, employeeID string) (org.Employee, error)
}

type Service struct {
	store StoreAPI
	dir   Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Create records a wage payment. The currency is gated against the
// employee's store, same as attendance.
func (s *Service) Create(ctx context.Context, input CreateInput) (Payment, error) {
	currency, err := money.Parse(input.Currency)
	if err != nil {
		return Payment{}, validation.Errorf("currency", "currency must be EUR or GBP")
	}

	employee, err := s.dir.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return Payment{}, err
	}
	store, err := s.dir.GetStore(ctx, employee.StoreID)
	if err != nil {
		return Payment{}, err
	}
	if !store.SupportsCurrency(currency) {
		return Payment{}, validation.Errorf("currency", "This store does not support %s", currency)
	}

	if err := validation.Positive("amountPaid", input.AmountPaid); err != nil {
		return Payment{}, err
	}
	if input.PaymentMethod != MethodCash && input.PaymentMethod != MethodAccount {
		return Payment{}, validation.Errorf("paymentMethod", "paymentMethod must be cash or account")
	}
	if input.PaidDate.IsZero() {
		return Payment{}, validation.Errorf("paidDate", "paidDate is required")
	}

	record := Payment{
		EmployeeID:    input.EmployeeID,
		AmountPaid:    input.AmountPaid,
		Currency:      currency,
		PaymentMethod: input.PaymentMethod,
		PaidDate:      input.PaidDate,
		Notes:         input.Notes,
	}
	id, err := s.store.Create(ctx, record)
	if err != nil {
		return Payment{}, err
	}
	record.ID = id
	return record, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Payment, error) {
	return s.store.List(ctx, filter)
}

// PaidTotals sums payments per currency for one employee.
func (s *Service) PaidTotals(ctx context.Context, filter Filter) (map[money.Currency]int64, error) {
	payments, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.AmountEntry, 0, len(payments))
	for _, record := range payments {
		entries = append(entries, ledger.AmountEntry{Currency: record.Currency, Amount: record.AmountPaid})
	}
	return ledger.FoldAmounts(entries), nil
}
