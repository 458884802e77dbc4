package delivery

import (
	"context"
	"time"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/timeclock"
	"storeops/internal/domain/validation"
)

type StoreAPI interface {
	Create(ctx context.Context, record Record) (string, error)
	Get(ctx context.Context, recordID string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, recordID string) error
}

type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
	GetDriver(ctx context.Context, driverID string) (org.Driver, error)
}

type Service struct {
	store StoreAPI
	dir   Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Create validates a driver shift and persists it. The delivery date is the
// check-in day; hours are derived from the shift times.
func (s *Service) Create(ctx context.Context, input CreateInput) (Record, error) {
	currency, err := money.Parse(input.Currency)
	if err != nil {
		return Record{}, validation.Errorf("currency", "currency must be EUR or GBP")
	}

	store, err := s.dir.GetStore(ctx, input.StoreID)
	if err != nil {
		return Record{}, err
	}
	if !store.SupportsCurrency(currency) {
		return Record{}, validation.Errorf("currency", "This store does not support %s", currency)
	}

	if _, err := s.dir.GetDriver(ctx, input.DriverID); err != nil {
		return Record{}, err
	}

	if err := validation.DateRange(input.CheckIn, input.CheckOut); err != nil {
		return Record{}, err
	}
	if err := validation.PositiveInt("numberOfDeliveries", input.NumberOfDeliveries); err != nil {
		return Record{}, err
	}
	if err := validation.NonNegative("expenseAmount", input.ExpenseAmount); err != nil {
		return Record{}, err
	}

	record := Record{
		DriverID:           input.DriverID,
		StoreID:            input.StoreID,
		DeliveryDate:       dateOf(input.CheckIn),
		CheckIn:            input.CheckIn,
		CheckOut:           input.CheckOut,
		HoursWorked:        timeclock.HoursBetween(input.CheckIn, input.CheckOut),
		NumberOfDeliveries: input.NumberOfDeliveries,
		Currency:           currency,
		ExpenseAmount:      input.ExpenseAmount,
		Notes:              input.Notes,
	}

	id, err := s.store.Create(ctx, record)
	if err != nil {
		return Record{}, err
	}
	record.ID = id
	return record, nil
}

func (s *Service) Get(ctx context.Context, recordID string) (Record, error) {
	return s.store.Get(ctx, recordID)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Record, error) {
	return s.store.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, recordID string) error {
	return s.store.Delete(ctx, recordID)
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ExpenseTotals sums delivery expenses per currency for the profit report.
func (s *Service) ExpenseTotals(ctx context.Context, filter Filter) (map[money.Currency]int64, error) {
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.AmountEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, ledger.AmountEntry{Currency: record.Currency, Amount: record.ExpenseAmount})
	}
	return ledger.FoldAmounts(entries), nil
}
