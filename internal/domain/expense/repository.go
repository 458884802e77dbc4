package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository persists expenses in Postgres and implements StoreAPI.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

const expenseColumns = `
	id, store_id, COALESCE(vendor_id::text, ''), amount, currency, status,
	expense_date, COALESCE(notes, ''), created_at, updated_at`

func (r *Repository) Create(ctx context.Context, record Expense) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
		INSERT INTO expenses (store_id, vendor_id, amount, currency, status, expense_date, notes)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)
		RETURNING id`,
		record.StoreID, record.VendorID, record.Amount, string(record.Currency),
		record.Status, record.ExpenseDate, record.Notes,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	return id, nil
}

func (r *Repository) Get(ctx context.Context, expenseID string) (Expense, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, expenseID)
	record, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		return Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return record, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []any{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		query += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND expense_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND expense_date < $%d", len(args))
	}
	query += " ORDER BY expense_date DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		record, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (r *Repository) MarkPaid(ctx context.Context, expenseID string) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE expenses SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> $2`, expenseID, StatusPaid)
	if err != nil {
		return fmt.Errorf("mark expense paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var record Expense
	var currency string
	err := row.Scan(
		&record.ID, &record.StoreID, &record.VendorID,
		&record.Amount, &currency, &record.Status,
		&record.ExpenseDate, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return Expense{}, err
	}
	record.Currency = money.Currency(currency)
	return record, nil
}
