package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository runs the aggregate queries behind reports. Sums happen in SQL
// so report generation never pages full record sets through the service.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) SalesTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(total), 0)
		FROM sales
		WHERE store_id = $1`, "sale_date", storeID, period)
}

func (r *Repository) ExpenseTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE store_id = $1`, "expense_date", storeID, period)
}

func (r *Repository) PayrollTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(amount_to_pay), 0)
		FROM attendance_records
		WHERE store_id = $1`, "check_in", storeID, period)
}

func (r *Repository) DeliveryExpenseTotals(ctx context.Context, storeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(expense_amount), 0)
		FROM delivery_records
		WHERE store_id = $1`, "delivery_date", storeID, period)
}

// EarnedByEmployee sums attendance amounts per currency for one employee.
func (r *Repository) EarnedByEmployee(ctx context.Context, employeeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(amount_to_pay), 0)
		FROM attendance_records
		WHERE employee_id = $1`, "check_in", employeeID, period)
}

// PaidToEmployee sums payments per currency for one employee.
func (r *Repository) PaidToEmployee(ctx context.Context, employeeID string, period Period) (map[money.Currency]int64, error) {
	return r.sumByCurrency(ctx, `
		SELECT currency, COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE employee_id = $1`, "paid_date", employeeID, period)
}

func (r *Repository) sumByCurrency(ctx context.Context, base, dateColumn, id string, period Period) (map[money.Currency]int64, error) {
	query := base
	args := []any{id}
	if !period.From.IsZero() {
		args = append(args, period.From)
		query += fmt.Sprintf(" AND %s >= $%d", dateColumn, len(args))
	}
	if !period.To.IsZero() {
		args = append(args, period.To)
		query += fmt.Sprintf(" AND %s < $%d", dateColumn, len(args))
	}
	query += " GROUP BY currency"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by currency: %w", err)
	}
	defer rows.Close()

	totals := map[money.Currency]int64{}
	for rows.Next() {
		var currency string
		var amount int64
		if err := rows.Scan(&currency, &amount); err != nil {
			return nil, fmt.Errorf("scan currency total: %w", err)
		}
		totals[money.Currency(currency)] = amount
	}
	return totals, rows.Err()
}
