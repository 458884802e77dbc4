package payment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository persists payments in Postgres and implements StoreAPI.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, record Payment) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
		INSERT INTO payments (employee_id, amount_paid, currency, payment_method, paid_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		record.EmployeeID, record.AmountPaid, string(record.Currency),
		record.PaymentMethod, record.PaidDate, record.Notes,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return id, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Payment, error) {
	query := `
		SELECT id, employee_id, amount_paid, currency, payment_method,
		       paid_date, COALESCE(notes, ''), created_at
		FROM payments
		WHERE 1=1`
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND paid_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND paid_date < $%d", len(args))
	}
	query += " ORDER BY paid_date DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		record, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (Payment, error) {
	var record Payment
	var currency string
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.AmountPaid, &currency,
		&record.PaymentMethod, &record.PaidDate, &record.Notes, &record.CreatedAt,
	)
	if err != nil {
		return Payment{}, err
	}
	record.Currency = money.Currency(currency)
	return record, nil
}
