package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository persists attendance records in Postgres and implements StoreAPI.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, record Record) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
		INSERT INTO attendance_records
			(employee_id, store_id, check_in, check_out, currency, hours_worked, amount_to_pay, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		record.EmployeeID, record.StoreID, record.CheckIn, record.CheckOut,
		string(record.Currency), record.HoursWorked, record.AmountToPay, record.Notes,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert attendance record: %w", err)
	}
	return id, nil
}

func (r *Repository) Get(ctx context.Context, recordID string) (Record, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, employee_id, store_id, check_in, check_out, currency,
		       hours_worked, amount_to_pay, COALESCE(notes, ''), created_at, updated_at
		FROM attendance_records
		WHERE id = $1`, recordID)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get attendance record: %w", err)
	}
	return record, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `
		SELECT id, employee_id, store_id, check_in, check_out, currency,
		       hours_worked, amount_to_pay, COALESCE(notes, ''), created_at, updated_at
		FROM attendance_records
		WHERE 1=1`
	args := []any{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		query += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND check_in >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND check_in < $%d", len(args))
	}
	query += " ORDER BY check_in DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *Repository) Update(ctx context.Context, record Record) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE attendance_records
		SET check_in = $2, check_out = $3, currency = $4,
		    hours_worked = $5, amount_to_pay = $6, notes = $7, updated_at = now()
		WHERE id = $1`,
		record.ID, record.CheckIn, record.CheckOut, string(record.Currency),
		record.HoursWorked, record.AmountToPay, record.Notes,
	)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, recordID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, recordID)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	var currency string
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.StoreID,
		&record.CheckIn, &record.CheckOut, &currency,
		&record.HoursWorked, &record.AmountToPay, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	record.Currency = money.Currency(currency)
	return record, nil
}
