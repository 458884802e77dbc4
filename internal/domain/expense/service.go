package expense

import (
	"context"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
)

type StoreAPI interface {
	Create(ctx context.Context, expense Expense) (string, error)
	Get(ctx context.Context, expenseID string) (Expense, error)
	List(ctx context.Context, filter Filter) ([]Expense, error)
	MarkPaid(ctx context.Context, expenseID string) error
}

type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
	GetVendor(ctx context.Context, vendorID string) (org.Vendor, error)
}

type Service struct {
	store StoreAPI
	dir   Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Create records a raised expense. The vendor is optional; when given it
// must exist.
func (s *Service) Create(ctx context.Context, input CreateInput) (Expense, error) {
	currency, err := money.Parse(input.Currency)
	if err != nil {
		return Expense{}, validation.Errorf("currency", "currency must be EUR or GBP")
	}

	store, err := s.dir.GetStore(ctx, input.StoreID)
	if err != nil {
		return Expense{}, err
	}
	if !store.SupportsCurrency(currency) {
		return Expense{}, validation.Errorf("currency", "This store does not support %s", currency)
	}

	if err := validation.NonNegative("amount", input.Amount); err != nil {
		return Expense{}, err
	}
	if input.ExpenseDate.IsZero() {
		return Expense{}, validation.Errorf("expenseDate", "expenseDate is required")
	}
	if input.VendorID != "" {
		if _, err := s.dir.GetVendor(ctx, input.VendorID); err != nil {
			return Expense{}, err
		}
	}

	record := Expense{
		StoreID:     input.StoreID,
		VendorID:    input.VendorID,
		Amount:      input.Amount,
		Currency:    currency,
		Status:      StatusRaised,
		ExpenseDate: input.ExpenseDate,
		Notes:       input.Notes,
	}
	id, err := s.store.Create(ctx, record)
	if err != nil {
		return Expense{}, err
	}
	record.ID = id
	return record, nil
}

// MarkPaid flips a raised expense to paid. Paying twice is rejected so the
// paid/pending split in reports stays honest.
func (s *Service) MarkPaid(ctx context.Context, expenseID string) (Expense, error) {
	record, err := s.store.Get(ctx, expenseID)
	if err != nil {
		return Expense{}, err
	}
	if record.Status == StatusPaid {
		return Expense{}, ErrAlreadyPaid
	}
	if err := s.store.MarkPaid(ctx, expenseID); err != nil {
		return Expense{}, err
	}
	record.Status = StatusPaid
	return record, nil
}

func (s *Service) Get(ctx context.Context, expenseID string) (Expense, error) {
	return s.store.Get(ctx, expenseID)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Expense, error) {
	return s.store.List(ctx, filter)
}

// Summary folds matching expenses into per-currency total/paid/pending.
func (s *Service) Summary(ctx context.Context, filter Filter) (map[money.Currency]ledger.ExpenseTotals, error) {
	matched, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.ExpenseEntry, 0, len(matched))
	for _, record := range matched {
		entries = append(entries, ledger.ExpenseEntry{
			Currency: record.Currency,
			Amount:   record.Amount,
			Paid:     record.Status == StatusPaid,
		})
	}
	return ledger.FoldExpenses(entries), nil
}
