package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storeops/internal/domain/ledger"
	"storeops/internal/domain/money"
	"storeops/internal/domain/org"
	"storeops/internal/platform/cache"
)

// profitCacheTTL keeps the profit report fresh enough for a back office
// refreshing a dashboard without hammering four aggregate queries per view.
const profitCacheTTL = 5 * time.Minute

// Aggregates is the slice of the report repository the service consumes.
type Aggregates interface {
	SalesTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error)
	ExpenseTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error)
	PayrollTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error)
	DeliveryExpenseTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error)
	EarnedByEmployee(ctx context.Context, employeeID string, period Period) (map[money.Currency]int64, error)
	PaidToEmployee(ctx context.Context, employeeID string, period Period) (map[money.Currency]int64, error)
}

type Directory interface {
	GetStore(ctx context.Context, storeID string) (org.Store, error)
	GetEmployee(ctx context.Context, employeeID string) (org.Employee, error)
	ListEmployees(ctx context.Context, storeID string) ([]org.Employee, error)
}

type Service struct {
	agg   Aggregates
	dir   Directory
	cache cache.ReportCache
}

func NewService(agg Aggregates, dir Directory, reportCache cache.ReportCache) *Service {
	if reportCache == nil {
		reportCache = cache.NoopReportCache{}
	}
	return &Service{agg: agg, dir: dir, cache: reportCache}
}

// StoreProfit computes per-currency profit for one store over a period:
// sales minus expenses minus payroll minus delivery expenses. A currency
// with activity in any category gets a line; missing categories count as
// zero. Results are cached briefly.
func (s *Service) StoreProfit(ctx context.Context, storeID string, period Period) (StoreProfit, error) {
	key := profitCacheKey(storeID, period)
	if payload, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("report cache read failed", "key", key, "error", err)
	} else if ok {
		var cached StoreProfit
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		slog.Warn("report cache payload corrupt, recomputing", "key", key)
	}

	store, err := s.dir.GetStore(ctx, storeID)
	if err != nil {
		return StoreProfit{}, err
	}

	salesTotals, err := s.agg.SalesTotals(ctx, storeID, period)
	if err != nil {
		return StoreProfit{}, err
	}
	expenseTotals, err := s.agg.ExpenseTotals(ctx, storeID, period)
	if err != nil {
		return StoreProfit{}, err
	}
	payrollTotals, err := s.agg.PayrollTotals(ctx, storeID, period)
	if err != nil {
		return StoreProfit{}, err
	}
	deliveryTotals, err := s.agg.DeliveryExpenseTotals(ctx, storeID, period)
	if err != nil {
		return StoreProfit{}, err
	}

	profit := ledger.Profit(ledger.ProfitInput{
		Sales:            salesTotals,
		Expenses:         expenseTotals,
		Payroll:          payrollTotals,
		DeliveryExpenses: deliveryTotals,
	})

	result := StoreProfit{
		StoreID:     storeID,
		StoreName:   store.Name,
		From:        period.From,
		To:          period.To,
		GeneratedAt: time.Now().UTC(),
	}
	for _, currency := range money.Currencies() {
		if _, ok := profit[currency]; !ok {
			continue
		}
		result.Lines = append(result.Lines, ProfitLine{
			Currency:         currency,
			Sales:            salesTotals[currency],
			Expenses:         expenseTotals[currency],
			Payroll:          payrollTotals[currency],
			DeliveryExpenses: deliveryTotals[currency],
			Profit:           profit[currency],
			Formatted:        money.Format(profit[currency], currency),
		})
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, payload, profitCacheTTL); err != nil {
			slog.Warn("report cache write failed", "key", key, "error", err)
		}
	}
	return result, nil
}

// EmployeeBalance reports earned/paid/remaining per currency for one
// employee. Currencies never net against each other.
func (s *Service) EmployeeBalance(ctx context.Context, employeeID string, period Period) (EmployeeBalance, error) {
	employee, err := s.dir.GetEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeBalance{}, err
	}
	return s.balanceFor(ctx, employee, period)
}

// PayrollBalances reports every employee's balance for a store, or for all
// stores when storeID is empty.
func (s *Service) PayrollBalances(ctx context.Context, storeID string, period Period) ([]EmployeeBalance, error) {
	employees, err := s.dir.ListEmployees(ctx, storeID)
	if err != nil {
		return nil, err
	}
	balances := make([]EmployeeBalance, 0, len(employees))
	for _, employee := range employees {
		balance, err := s.balanceFor(ctx, employee, period)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

func (s *Service) balanceFor(ctx context.Context, employee org.Employee, period Period) (EmployeeBalance, error) {
	earned, err := s.agg.EarnedByEmployee(ctx, employee.ID, period)
	if err != nil {
		return EmployeeBalance{}, err
	}
	paid, err := s.agg.PaidToEmployee(ctx, employee.ID, period)
	if err != nil {
		return EmployeeBalance{}, err
	}
	remaining := ledger.Remaining(earned, paid)

	balance := EmployeeBalance{
		EmployeeID:   employee.ID,
		EmployeeName: employee.FirstName + " " + employee.LastName,
	}
	for _, currency := range money.Currencies() {
		if _, ok := remaining[currency]; !ok {
			continue
		}
		balance.Balances = append(balance.Balances, Balance{
			Currency:  currency,
			Earned:    earned[currency],
			Paid:      paid[currency],
			Remaining: remaining[currency],
		})
	}
	return balance, nil
}

func profitCacheKey(storeID string, period Period) string {
	from, to := "open", "open"
	if !period.From.IsZero() {
		from = period.From.Format("2006-01-02")
	}
	if !period.To.IsZero() {
		to = period.To.Format("2006-01-02")
	}
	return fmt.Sprintf("reports:profit:%s:%s:%s", storeID, from, to)
}
