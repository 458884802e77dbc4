package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
)

// Repository persists sales in Postgres and implements StoreAPI. Upserts
// rely on the UNIQUE(store_id, currency, sale_date) constraint so retries
// replace the day's figures atomically.
type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

const saleColumns = `
	id, store_id, sale_date, currency,
	cash, online, delivery, just_eat, mylocal, credit_card, deliveroo, uber_eats,
	total, cash_in_till, difference, COALESCE(notes, ''), created_at, updated_at`

func (r *Repository) Upsert(ctx context.Context, sale Sale) (Sale, error) {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO sales
			(store_id, sale_date, currency,
			 cash, online, delivery, just_eat, mylocal, credit_card, deliveroo, uber_eats,
			 total, cash_in_till, difference, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (store_id, currency, sale_date) DO UPDATE SET
			cash = EXCLUDED.cash,
			online = EXCLUDED.online,
			delivery = EXCLUDED.delivery,
			just_eat = EXCLUDED.just_eat,
			mylocal = EXCLUDED.mylocal,
			credit_card = EXCLUDED.credit_card,
			deliveroo = EXCLUDED.deliveroo,
			uber_eats = EXCLUDED.uber_eats,
			total = EXCLUDED.total,
			cash_in_till = EXCLUDED.cash_in_till,
			difference = EXCLUDED.difference,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING `+saleColumns,
		sale.StoreID, sale.SaleDate, string(sale.Currency),
		sale.Channels.Cash, sale.Channels.Online, sale.Channels.Delivery,
		sale.Channels.JustEat, sale.Channels.MyLocal, sale.Channels.CreditCard,
		sale.Channels.Deliveroo, sale.Channels.UberEats,
		sale.Total, sale.CashInTill, sale.Difference, sale.Notes,
	)
	stored, err := scanSale(row)
	if err != nil {
		return Sale{}, fmt.Errorf("upsert sale: %w", err)
	}
	return stored, nil
}

func (r *Repository) Get(ctx context.Context, saleID string) (Sale, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, saleID)
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return Sale{}, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		query += fmt.Sprintf(" AND store_id = $%d", len(args))
	}
	if filter.Currency != "" {
		args = append(args, filter.Currency)
		query += fmt.Sprintf(" AND currency = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND sale_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND sale_date < $%d", len(args))
	}
	query += " ORDER BY sale_date DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (Sale, error) {
	var sale Sale
	var currency string
	err := row.Scan(
		&sale.ID, &sale.StoreID, &sale.SaleDate, &currency,
		&sale.Channels.Cash, &sale.Channels.Online, &sale.Channels.Delivery,
		&sale.Channels.JustEat, &sale.Channels.MyLocal, &sale.Channels.CreditCard,
		&sale.Channels.Deliveroo, &sale.Channels.UberEats,
		&sale.Total, &sale.CashInTill, &sale.Difference,
		&sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		return Sale{}, err
	}
	sale.Currency = money.Currency(currency)
	return sale, nil
}
