package attendance

import (
	"context"
	"log/slog"
	"time"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/timeclock"
	"storeops/internal/domain/validation"
	"storeops/internal/domain/wage"
)

type Service struct {
	store StoreAPI
	dir   Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Create validates a shift, derives hours and the amount owed, and persists
// the record.
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

	employee, err := s.dir.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return Record{}, err
	}

	if err := validation.DateRange(input.CheckIn, input.CheckOut); err != nil {
		return Record{}, err
	}

	record := Record{
		EmployeeID: input.EmployeeID,
		StoreID:    input.StoreID,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Currency:   currency,
		Notes:      input.Notes,
	}
	s.computePay(record.CheckIn, record.CheckOut, currency, employee, &record)

	id, err := s.store.Create(ctx, record)
	if err != nil {
		return Record{}, err
	}
	record.ID = id
	return record, nil
}

// Update replaces the shift times, currency, and notes of an existing
// record, recomputing hours and amount from the new values.
func (s *Service) Update(ctx context.Context, recordID string, input UpdateInput) (Record, error) {
	record, err := s.store.Get(ctx, recordID)
	if err != nil {
		return Record{}, err
	}

	currency, err := money.Parse(input.Currency)
	if err != nil {
		return Record{}, validation.Errorf("currency", "currency must be EUR or GBP")
	}

	store, err := s.dir.GetStore(ctx, record.StoreID)
	if err != nil {
		return Record{}, err
	}
	if !store.SupportsCurrency(currency) {
		return Record{}, validation.Errorf("currency", "This store does not support %s", currency)
	}

	if err := validation.DateRange(input.CheckIn, input.CheckOut); err != nil {
		return Record{}, err
	}

	employee, err := s.dir.GetEmployee(ctx, record.EmployeeID)
	if err != nil {
		return Record{}, err
	}

	record.CheckIn = input.CheckIn
	record.CheckOut = input.CheckOut
	record.Currency = currency
	record.Notes = input.Notes
	s.computePay(record.CheckIn, record.CheckOut, currency, employee, &record)

	if err := s.store.Update(ctx, record); err != nil {
		return Record{}, err
	}
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

// Summary folds matching records into per-currency hour and amount totals.
func (s *Service) Summary(ctx context.Context, filter Filter) (map[money.Currency]ledger.AttendanceTotals, error) {
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.AttendanceEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, ledger.AttendanceEntry{
			Currency: record.Currency,
			Hours:    record.HoursWorked,
			Amount:   record.AmountToPay,
		})
	}
	return ledger.FoldAttendance(entries), nil
}

func (s *Service) computePay(checkIn, checkOut time.Time, currency money.Currency, employee org.Employee, record *Record) {
	record.HoursWorked = timeclock.HoursBetween(checkIn, checkOut)
	record.AmountToPay = wage.Compute(employee.WageType, employee.Rates(), record.HoursWorked, currency)
	if !wage.Configured(employee.WageType, employee.Rates(), currency) {
		// Historical behavior: unconfigured rate pays zero instead of
		// failing. Logged so zero-amount shifts are traceable.
		slog.Warn("no wage rate configured, amount set to zero",
			"employeeId", employee.ID,
			"wageType", string(employee.WageType),
			"currency", string(currency),
		)
	}
}
