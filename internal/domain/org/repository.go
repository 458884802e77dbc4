package org

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/domain/money"
	"storeops/internal/domain/wage"
)

type Repository struct {
	DB *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateStore(ctx context.Context, store Store) (string, error) {
	currencies := make([]string, len(store.SupportedCurrencies))
	for i, currency := range store.SupportedCurrencies {
		currencies[i] = string(currency)
	}
	var id string
	err := r.DB.QueryRow(ctx, `
    INSERT INTO stores (name, supported_currencies, default_currency)
    VALUES ($1,$2,$3)
    RETURNING id
  `, store.Name, currencies, string(store.DefaultCurrency)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetStore(ctx context.Context, storeID string) (Store, error) {
	var store Store
	var currencies []string
	var defaultCurrency string
	err := r.DB.QueryRow(ctx, `
    SELECT id, name, supported_currencies, default_currency, created_at, updated_at
    FROM stores
    WHERE id = $1
  `, storeID).Scan(&store.ID, &store.Name, &currencies, &defaultCurrency, &store.CreatedAt, &store.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Store{}, ErrStoreNotFound
	}
	if err != nil {
		return Store{}, err
	}
	store.SupportedCurrencies = toCurrencies(currencies)
	store.DefaultCurrency = money.Currency(defaultCurrency)
	return store, nil
}

func (r *Repository) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := r.DB.Query(ctx, `
    SELECT id, name, supported_currencies, default_currency, created_at, updated_at
    FROM stores
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var store Store
		var currencies []string
		var defaultCurrency string
		if err := rows.Scan(&store.ID, &store.Name, &currencies, &defaultCurrency, &store.CreatedAt, &store.UpdatedAt); err != nil {
			return nil, err
		}
		store.SupportedCurrencies = toCurrencies(currencies)
		store.DefaultCurrency = money.Currency(defaultCurrency)
		stores = append(stores, store)
	}
	return stores, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
    INSERT INTO employees (store_id, first_name, last_name, wage_type,
      hourly_rate_eur, hourly_rate_gbp, daily_wage_eur, daily_wage_gbp, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, emp.StoreID, emp.FirstName, emp.LastName, string(emp.WageType),
		emp.HourlyRateEur, emp.HourlyRateGbp, emp.DailyWageEur, emp.DailyWageGbp, emp.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var emp Employee
	var wageType string
	err := r.DB.QueryRow(ctx, `
    SELECT id, store_id, first_name, last_name, wage_type,
           hourly_rate_eur, hourly_rate_gbp, daily_wage_eur, daily_wage_gbp,
           status, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.StoreID, &emp.FirstName, &emp.LastName, &wageType,
		&emp.HourlyRateEur, &emp.HourlyRateGbp, &emp.DailyWageEur, &emp.DailyWageGbp,
		&emp.Status, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	emp.WageType = wage.Type(wageType)
	return emp, nil
}

func (r *Repository) ListEmployees(ctx context.Context, storeID string) ([]Employee, error) {
	query := `
    SELECT id, store_id, first_name, last_name, wage_type,
           hourly_rate_eur, hourly_rate_gbp, daily_wage_eur, daily_wage_gbp,
           status, created_at, updated_at
    FROM employees
  `
	args := []any{}
	if storeID != "" {
		query += " WHERE store_id = $1"
		args = append(args, storeID)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		var wageType string
		if err := rows.Scan(&emp.ID, &emp.StoreID, &emp.FirstName, &emp.LastName, &wageType,
			&emp.HourlyRateEur, &emp.HourlyRateGbp, &emp.DailyWageEur, &emp.DailyWageGbp,
			&emp.Status, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		emp.WageType = wage.Type(wageType)
		employees = append(employees, emp)
	}
	return employees, nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) error {
	cmd, err := r.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        wage_type = $3,
        hourly_rate_eur = $4,
        hourly_rate_gbp = $5,
        daily_wage_eur = $6,
        daily_wage_gbp = $7,
        status = $8,
        updated_at = now()
    WHERE id = $9
  `, emp.FirstName, emp.LastName, string(emp.WageType),
		emp.HourlyRateEur, emp.HourlyRateGbp, emp.DailyWageEur, emp.DailyWageGbp,
		emp.Status, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *Repository) CreateDriver(ctx context.Context, driver Driver) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
    INSERT INTO drivers (store_id, name, phone, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, driver.StoreID, driver.Name, driver.Phone, driver.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetDriver(ctx context.Context, driverID string) (Driver, error) {
	var driver Driver
	err := r.DB.QueryRow(ctx, `
    SELECT id, store_id, name, COALESCE(phone, ''), status, created_at
    FROM drivers
    WHERE id = $1
  `, driverID).Scan(&driver.ID, &driver.StoreID, &driver.Name, &driver.Phone, &driver.Status, &driver.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Driver{}, ErrDriverNotFound
	}
	if err != nil {
		return Driver{}, err
	}
	return driver, nil
}

func (r *Repository) ListDrivers(ctx context.Context, storeID string) ([]Driver, error) {
	query := `
    SELECT id, store_id, name, COALESCE(phone, ''), status, created_at
    FROM drivers
  `
	args := []any{}
	if storeID != "" {
		query += " WHERE store_id = $1"
		args = append(args, storeID)
	}
	query += " ORDER BY name"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var driver Driver
		if err := rows.Scan(&driver.ID, &driver.StoreID, &driver.Name, &driver.Phone, &driver.Status, &driver.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}

func (r *Repository) CreateVendor(ctx context.Context, vendor Vendor) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
    INSERT INTO vendors (name)
    VALUES ($1)
    RETURNING id
  `, vendor.Name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetVendor(ctx context.Context, vendorID string) (Vendor, error) {
	var vendor Vendor
	err := r.DB.QueryRow(ctx, `
    SELECT id, name, created_at
    FROM vendors
    WHERE id = $1
  `, vendorID).Scan(&vendor.ID, &vendor.Name, &vendor.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, ErrVendorNotFound
	}
	if err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}

func (r *Repository) ListVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := r.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM vendors
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var vendor Vendor
		if err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.CreatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, nil
}

func toCurrencies(values []string) []money.Currency {
	out := make([]money.Currency, 0, len(values))
	for _, value := range values {
		out = append(out, money.Currency(value))
	}
	return out
}
