package expense

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
)

type fakeStore struct {
	records map[string]Expense
	nextID  int
}

func (f *fakeStore) Create(_ context.Context, record Expense) (string, error) {
	f.nextID++
	id := fmt.Sprintf("exp-%d", f.nextID)
	record.ID = id
	f.records[id] = record
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, expenseID string) (Expense, error) {
	record, ok := f.records[expenseID]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return record, nil
}

func (f *fakeStore) List(_ context.Context, filter Filter) ([]Expense, error) {
	var out []Expense
	for _, record := range f.records {
		if filter.StoreID != "" && record.StoreID != filter.StoreID {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeStore) MarkPaid(_ context.Context, expenseID string) error {
	record, ok := f.records[expenseID]
	if !ok {
		return ErrExpenseNotFound
	}
	record.Status = StatusPaid
	f.records[expenseID] = record
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) GetStore(_ context.Context, storeID string) (org.Store, error) {
	if storeID != "store-1" {
		return org.Store{}, org.ErrStoreNotFound
	}
	return org.Store{
		ID:                  "store-1",
		SupportedCurrencies: []money.Currency{money.EUR},
		DefaultCurrency:     money.EUR,
	}, nil
}

func (fakeDirectory) GetVendor(_ context.Context, vendorID string) (org.Vendor, error) {
	if vendorID != "vendor-1" {
		return org.Vendor{}, org.ErrVendorNotFound
	}
	return org.Vendor{ID: "vendor-1", Name: "Fresh Produce Ltd"}, nil
}

func testService() (*Service, *fakeStore) {
	store := &fakeStore{records: map[string]Expense{}}
	return NewService(store, fakeDirectory{}), store
}

func validInput() CreateInput {
	return CreateInput{
		StoreID:     "store-1",
		VendorID:    "vendor-1",
		Amount:      12500,
		Currency:    "EUR",
		ExpenseDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateRaisesExpense(t *testing.T) {
	svc, _ := testService()

	record, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Status != StatusRaised {
		t.Fatalf("expected raised status, got %q", record.Status)
	}
}

func TestCreateAcceptsZeroAmount(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.Amount = 0

	record, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Amount != 0 {
		t.Fatalf("expected zero amount, got %d", record.Amount)
	}
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.Amount = -100

	_, err := svc.Create(context.Background(), input)
	if _, ok := validation.AsError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsUnknownVendor(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.VendorID = "vendor-missing"

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, org.ErrVendorNotFound) {
		t.Fatalf("expected vendor not found, got %v", err)
	}
}

func TestMarkPaidOnce(t *testing.T) {
	svc, _ := testService()

	record, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Fatalf("expected paid status, got %q", paid.Status)
	}

	if _, err := svc.MarkPaid(context.Background(), record.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestSummarySplitsPaidAndPending(t *testing.T) {
	svc, _ := testService()

	first, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	input := validInput()
	input.Amount = 7500
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := svc.MarkPaid(context.Background(), first.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	summary, err := svc.Summary(context.Background(), Filter{StoreID: "store-1"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	totals := summary[money.EUR]
	if totals.Total != 20000 || totals.Paid != 12500 || totals.Pending != 7500 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if totals.Paid+totals.Pending != totals.Total {
		t.Fatal("paid+pending must equal total")
	}
}
