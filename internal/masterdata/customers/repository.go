package customers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Customer, error)
	Get(ctx context.Context, id int64) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id int64, customer Customer) error
	Deactivate(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]Customer, error) {
	query := `SELECT id, customer_code, customer_name, address, phone, is_active, created_at FROM customers`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY customer_code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT id, customer_code, customer_name, address, phone, is_active, created_at FROM customers WHERE id = $1`, id)
	var c Customer
	if err := scanCustomer(row, &c); err != nil {
		return Customer{}, internalshared.ClassifyPgError(err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO customers (customer_code, customer_name, address, phone, is_active, created_at) VALUES ($1, $2, $3, $4, TRUE, $5) RETURNING id`,
		customer.Code, customer.Name, customer.Address, customer.Phone, now).Scan(&customer.ID)
	if err != nil {
		return Customer{}, internalshared.ClassifyPgError(err)
	}
	customer.IsActive = true
	customer.CreatedAt = now
	return customer, nil
}

func (r *repository) Update(ctx context.Context, id int64, customer Customer) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET customer_code = $1, customer_name = $2, address = $3, phone = $4, is_active = $5 WHERE id = $6`,
		customer.Code, customer.Name, customer.Address, customer.Phone, customer.IsActive, id)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(&c.ID, &c.Code, &c.Name, &c.Address, &c.Phone, &c.IsActive, &c.CreatedAt)
}
