package delivery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
)

type fakeStore struct {
	records map[string]Record
	nextID  int
}

func (f *fakeStore) Create(_ context.Context, record Record) (string, error) {
	f.nextID++
	id := fmt.Sprintf("del-%d", f.nextID)
	record.ID = id
	f.records[id] = record
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, recordID string) (Record, error) {
	record, ok := f.records[recordID]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeStore) List(_ context.Context, filter Filter) ([]Record, error) {
	var out []Record
	for _, record := range f.records {
		if filter.StoreID != "" && record.StoreID != filter.StoreID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, recordID string) error {
	if _, ok := f.records[recordID]; !ok {
		return ErrRecordNotFound
	}
	delete(f.records, recordID)
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

func (fakeDirectory) GetDriver(_ context.Context, driverID string) (org.Driver, error) {
	if driverID != "driver-1" {
		return org.Driver{}, org.ErrDriverNotFound
	}
	return org.Driver{ID: "driver-1", StoreID: "store-1", Name: "Sam"}, nil
}

func testService() (*Service, *fakeStore) {
	store := &fakeStore{records: map[string]Record{}}
	return NewService(store, fakeDirectory{}), store
}

func validInput() CreateInput {
	checkIn := time.Date(2026, 4, 7, 17, 0, 0, 0, time.UTC)
	return CreateInput{
		DriverID:           "driver-1",
		StoreID:            "store-1",
		CheckIn:            checkIn,
		CheckOut:           checkIn.Add(5 * time.Hour),
		NumberOfDeliveries: 12,
		Currency:           "EUR",
		ExpenseAmount:      4500,
	}
}

func TestCreateDerivesHoursAndDate(t *testing.T) {
	svc, _ := testService()

	record, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.HoursWorked != 5.0 {
		t.Fatalf("expected 5 hours, got %v", record.HoursWorked)
	}
	want := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	if !record.DeliveryDate.Equal(want) {
		t.Fatalf("expected delivery date %v, got %v", want, record.DeliveryDate)
	}
}

func TestCreateRejectsZeroDeliveries(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.NumberOfDeliveries = 0

	_, err := svc.Create(context.Background(), input)
	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "numberOfDeliveries" {
		t.Fatalf("unexpected field: %q", verr.Field)
	}
}

func TestCreateRejectsNegativeExpense(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.ExpenseAmount = -1

	_, err := svc.Create(context.Background(), input)
	if _, ok := validation.AsError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsUnsupportedCurrency(t *testing.T) {
	svc, _ := testService()
	input := validInput()
	input.Currency = "GBP"

	_, err := svc.Create(context.Background(), input)
	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Message != "This store does not support GBP" {
		t.Fatalf("unexpected message: %q", verr.Message)
	}
}

func TestExpenseTotals(t *testing.T) {
	svc, _ := testService()

	for i := 0; i < 2; i++ {
		input := validInput()
		input.CheckIn = input.CheckIn.AddDate(0, 0, i)
		input.CheckOut = input.CheckOut.AddDate(0, 0, i)
		if _, err := svc.Create(context.Background(), input); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	totals, err := svc.ExpenseTotals(context.Background(), Filter{StoreID: "store-1"})
	if err != nil {
		t.Fatalf("expense totals: %v", err)
	}
	if totals[money.EUR] != 9000 {
		t.Fatalf("expected 9000, got %d", totals[money.EUR])
	}
}
