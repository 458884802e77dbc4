package attendance

import (
	"context"
	"testing"
	"time"

	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/domain/validation"
	"storeops/internal/domain/wage"
)

type fakeStore struct {
	records map[string]Record
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]Record{}, nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, record Record) (string, error) {
	id := time.Now().Format("20060102") + string(rune('a'+f.nextID))
	f.nextID++
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
		if filter.EmployeeID != "" && record.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, record Record) error {
	if _, ok := f.records[record.ID]; !ok {
		return ErrRecordNotFound
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeStore) Delete(_ context.Context, recordID string) error {
	if _, ok := f.records[recordID]; !ok {
		return ErrRecordNotFound
	}
	delete(f.records, recordID)
	return nil
}

type fakeDirectory struct {
	stores    map[string]org.Store
	employees map[string]org.Employee
}

func (f *fakeDirectory) GetStore(_ context.Context, storeID string) (org.Store, error) {
	store, ok := f.stores[storeID]
	if !ok {
		return org.Store{}, org.ErrStoreNotFound
	}
	return store, nil
}

func (f *fakeDirectory) GetEmployee(_ context.Context, employeeID string) (org.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return org.Employee{}, org.ErrEmployeeNotFound
	}
	return emp, nil
}

func testService() (*Service, *fakeStore) {
	rate := 15.0
	daily := 80.0
	dir := &fakeDirectory{
		stores: map[string]org.Store{
			"store-1": {
				ID:                  "store-1",
				SupportedCurrencies: []money.Currency{money.EUR},
				DefaultCurrency:     money.EUR,
			},
			"store-2": {
				ID:                  "store-2",
				SupportedCurrencies: []money.Currency{money.EUR, money.GBP},
				DefaultCurrency:     money.GBP,
			},
		},
		employees: map[string]org.Employee{
			"emp-hourly": {
				ID:            "emp-hourly",
				StoreID:       "store-1",
				WageType:      wage.TypeHourly,
				HourlyRateEur: &rate,
			},
			"emp-fixed": {
				ID:           "emp-fixed",
				StoreID:      "store-2",
				WageType:     wage.TypeFixed,
				DailyWageGbp: &daily,
			},
			"emp-bare": {
				ID:       "emp-bare",
				StoreID:  "store-1",
				WageType: wage.TypeHourly,
			},
		},
	}
	store := newFakeStore()
	return NewService(store, dir), store
}

func TestCreateComputesHourlyPay(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	record, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-hourly",
		StoreID:    "store-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(8 * time.Hour),
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.HoursWorked != 8.0 {
		t.Fatalf("expected 8 hours, got %v", record.HoursWorked)
	}
	if record.AmountToPay != 12000 {
		t.Fatalf("expected 12000 minor units, got %d", record.AmountToPay)
	}
}

func TestCreateComputesFixedDailyPay(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// 25 hours spans two wage days for a fixed-daily employee.
	record, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-fixed",
		StoreID:    "store-2",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(25 * time.Hour),
		Currency:   "GBP",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.AmountToPay != 16000 {
		t.Fatalf("expected 16000 minor units, got %d", record.AmountToPay)
	}
}

func TestCreateRejectsUnsupportedCurrency(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-hourly",
		StoreID:    "store-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(time.Hour),
		Currency:   "GBP",
	})
	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Message != "This store does not support GBP" {
		t.Fatalf("unexpected message: %q", verr.Message)
	}
}

func TestCreateRejectsInvertedTimes(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-hourly",
		StoreID:    "store-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(-time.Hour),
		Currency:   "EUR",
	})
	verr, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Message != "Check-out time must be after check-in time" {
		t.Fatalf("unexpected message: %q", verr.Message)
	}
}

func TestCreateUnconfiguredRatePaysZero(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	record, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-bare",
		StoreID:    "store-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(6 * time.Hour),
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.AmountToPay != 0 {
		t.Fatalf("expected zero amount for unconfigured rate, got %d", record.AmountToPay)
	}
	if record.HoursWorked != 6.0 {
		t.Fatalf("hours should still be recorded, got %v", record.HoursWorked)
	}
}

func TestUpdateRecomputesPay(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	record, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-hourly",
		StoreID:    "store-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(4 * time.Hour),
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), record.ID, UpdateInput{
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(10 * time.Hour),
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HoursWorked != 10.0 {
		t.Fatalf("expected 10 hours after update, got %v", updated.HoursWorked)
	}
	if updated.AmountToPay != 15000 {
		t.Fatalf("expected 15000 minor units after update, got %d", updated.AmountToPay)
	}
}

func TestSummaryFoldsByCurrency(t *testing.T) {
	svc, _ := testService()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			EmployeeID: "emp-hourly",
			StoreID:    "store-1",
			CheckIn:    checkIn.AddDate(0, 0, i),
			CheckOut:   checkIn.AddDate(0, 0, i).Add(8 * time.Hour),
			Currency:   "EUR",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	summary, err := svc.Summary(context.Background(), Filter{StoreID: "store-1"})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	totals, ok := summary[money.EUR]
	if !ok {
		t.Fatal("expected EUR totals")
	}
	if totals.Records != 3 || totals.Hours != 24.0 || totals.Amount != 36000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}
