package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository persists delivery records in Postgres and implements StoreAPI.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, record Record) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
		INSERT INTO delivery_records
			(driver_id, store_id, delivery_date, check_in, check_out,
			 hours_worked, number_of_deliveries, currency, expense_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		record.DriverID, record.StoreID, record.DeliveryDate, record.CheckIn, record.CheckOut,
		record.HoursWorked, record.NumberOfDeliveries, string(record.Currency),
		record.ExpenseAmount, record.Notes,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert delivery record: %w", err)
	}
	return id, nil
}

func (r *Repository) Get(ctx context.Context, recordID string) (Record, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, driver_id, store_id, delivery_date, check_in, check_out,
		       hours_worked, number_of_deliveries, currency, expense_amount,
		       COALESCE(notes, ''), created_at
		FROM delivery_records
		WHERE id = $1`, recordID)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get delivery record: %w", err)
	}
	return record, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `
		SELECT id, driver_id, store_id, delivery_date, check_in, check_out,
		       hours_worked, number_of_deliveries, currency, expense_amount,
		       COALESCE(notes, ''), created_at
		FROM delivery_records
		WHERE 1=1`
	args := []any{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		query += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		query += fmt.Sprintf(" AND driver_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND delivery_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND delivery_date < $%d", len(args))
	}
	query += " ORDER BY delivery_date DESC, check_in DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, recordID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM delivery_records WHERE id = $1`, recordID)
	if err != nil {
		return fmt.Errorf("delete delivery record: %w", err)
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
		&record.ID, &record.DriverID, &record.StoreID,
		&record.DeliveryDate, &record.CheckIn, &record.CheckOut,
		&record.HoursWorked, &record.NumberOfDeliveries, &currency,
		&record.ExpenseAmount, &record.Notes, &record.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	record.Currency = money.Currency(currency)
	return record, nil
}
