package products

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roundstock/roundstock/internal/masterdata/shared"
	platformdb "github.com/roundstock/roundstock/internal/platform/db"
	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, error)
	Get(ctx context.Context, code string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, code string, product Product) error
	Delete(ctx context.Context, code string) error
	BulkUpsert(ctx context.Context, products []Product) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `code, name, small_units_per_big, cost_price_small, sell_price_small, image_path, notes, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, code string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
	var p Product
	if err := scanProduct(row, &p); err != nil {
		return Product{}, internalshared.ClassifyPgError(err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	_, err := r.db.Exec(ctx, `INSERT INTO products (code, name, small_units_per_big, cost_price_small, sell_price_small, image_path, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.Code, product.Name, product.SmallUnitsPerBig, product.CostPriceSmall, product.SellPriceSmall, product.ImagePath, product.Notes, now, now)
	if err != nil {
		return Product{}, internalshared.ClassifyPgError(err)
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, code string, product Product) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET name = $1, small_units_per_big = $2, cost_price_small = $3, sell_price_small = $4, image_path = $5, notes = $6, updated_at = $7 WHERE code = $8`,
		product.Name, product.SmallUnitsPerBig, product.CostPriceSmall, product.SellPriceSmall, product.ImagePath, product.Notes, time.Now(), code)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return internalshared.ClassifyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}

func (r *repository) BulkUpsert(ctx context.Context, list []Product) error {
	return platformdb.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		now := time.Now()
		for _, p := range list {
			_, err := tx.Exec(ctx, `
				INSERT INTO products (code, name, small_units_per_big, cost_price_small, sell_price_small, image_path, notes, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
				ON CONFLICT (code) DO UPDATE SET
					name = EXCLUDED.name,
					small_units_per_big = EXCLUDED.small_units_per_big,
					cost_price_small = EXCLUDED.cost_price_small,
					sell_price_small = EXCLUDED.sell_price_small,
					image_path = EXCLUDED.image_path,
					notes = EXCLUDED.notes,
					updated_at = EXCLUDED.updated_at`,
				p.Code, p.Name, p.SmallUnitsPerBig, p.CostPriceSmall, p.SellPriceSmall, p.ImagePath, p.Notes, now)
			if err != nil {
				return internalshared.ClassifyPgError(err)
			}
		}
		return nil
	})
}

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.Code, &p.Name, &p.SmallUnitsPerBig, &p.CostPriceSmall, &p.SellPriceSmall, &p.ImagePath, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "cost":
		return "cost_price_small " + dir
	case "price":
		return "sell_price_small " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "code " + dir
	}
}
