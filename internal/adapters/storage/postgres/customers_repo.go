package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-console/internal/domain/customers"
)

type CustomersRepo struct {
	c conn
}

const customerColumns = `id, customer_name, customer_phone, customer_address, created_at`

func (r *CustomersRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.c.q().ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.Phone, c.Address, c.CreatedAt)
	return err
}

func (r *CustomersRepo) Update(ctx context.Context, c customers.Customer) error {
	res, err := r.c.q().ExecContext(ctx, `
		UPDATE customers
		SET customer_name = $2, customer_phone = $3, customer_address = $4
		WHERE id = $1
	`, c.ID, c.Name, c.Phone, c.Address)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

func (r *CustomersRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Customer{}, customers.ErrNotFound
	}
	row := r.c.q().QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

func (r *CustomersRepo) GetByPhone(ctx context.Context, phone string) (customers.Customer, error) {
	row := r.c.q().QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE customer_phone = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, phone)
	return scanCustomer(row)
}

func (r *CustomersRepo) List(ctx context.Context) ([]customers.Customer, error) {
	rows, err := r.c.q().QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY customer_name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Customer, 0)
	for rows.Next() {
		var c customers.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCustomer(row *sql.Row) (customers.Customer, error) {
	var c customers.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		if isNoRows(err) {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, err
	}
	return c, nil
}
