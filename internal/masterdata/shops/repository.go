package shops

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Shop, error)
	Get(ctx context.Context, id int64) (Shop, error)
	Create(ctx context.Context, shop Shop) (Shop, error)
	Update(ctx context.Context, id int64, shop Shop) error
	Deactivate(ctx context.Context, id int64) error
	Referenced(ctx context.Context, id int64) (bool, error)
	HardDelete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]Shop, error) {
	query := `SELECT id, shop_code, shop_name, address, phone, is_active, created_at FROM shops`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY shop_code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Shop
	for rows.Next() {
		var s Shop
		if err := scanShop(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Shop, error) {
	row := r.db.QueryRow(ctx, `SELECT id, shop_code, shop_name, address, phone, is_active, created_at FROM shops WHERE id = $1`, id)
	var s Shop
	if err := scanShop(row, &s); err != nil {
		return Shop{}, internalshared.ClassifyPgError(err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, shop Shop) (Shop, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO shops (shop_code, shop_name, address, phone, is_active, created_at) VALUES ($1, $2, $3, $4, TRUE, $5) RETURNING id`,
		shop.Code, shop.Name, shop.Address, shop.Phone, now).Scan(&shop.ID)
	if err != nil {
		return Shop{}, internalshared.ClassifyPgError(err)
	}
	shop.IsActive = true
	shop.CreatedAt = now
	return shop, nil
}

func (r *repository) Update(ctx context.Context, id int64, shop Shop) error {
	tag, err := r.db.Exec(ctx, `UPDATE shops SET shop_code = $1, shop_name = $2, address = $3, phone = $4, is_active = $5 WHERE id = $6`,
		shop.Code, shop.Name, shop.Address, shop.Phone, shop.IsActive, id)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE shops SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

// Referenced reports whether any distribution or order row points at the shop.
func (r *repository) Referenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM shop_distribution WHERE shop_id = $1)
			OR EXISTS (SELECT 1 FROM orders WHERE shop_id = $1)`, id).Scan(&referenced)
	return referenced, err
}

func (r *repository) HardDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func scanShop(row pgx.Row, s *Shop) error {
	return row.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone, &s.IsActive, &s.CreatedAt)
}
