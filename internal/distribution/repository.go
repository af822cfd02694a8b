package distribution

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists shop distribution rows in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes transactional operations used by the service.
type TxRepository interface {
	UpsertCell(ctx context.Context, productCode string, roundID, shopID, quantity int64) error
	UpsertReceivedTotal(ctx context.Context, productCode string, roundID, total int64) error
	Problems(ctx context.Context, roundID int64) ([]Problem, error)
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a RepeatableRead transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Upsert writes one (product, round, shop) cell outside a transaction.
func (r *Repository) Upsert(ctx context.Context, productCode string, roundID, shopID, quantity int64) error {
	return upsertCell(ctx, r.pool, productCode, roundID, shopID, quantity)
}

// Problems lists over-allocated products for the round.
func (r *Repository) Problems(ctx context.Context, roundID int64) ([]Problem, error) {
	return queryProblems(ctx, r.pool, roundID)
}

// AllocationsByRound groups positive allocations by active shop.
func (r *Repository) AllocationsByRound(ctx context.Context, roundID int64) ([]ShopAllocation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.shop_code, s.shop_name, d.product_code, COALESCE(p.name, ''), SUM(d.quantity)
		FROM shop_distribution d
		JOIN shops s ON d.shop_id = s.id
		LEFT JOIN products p ON d.product_code = p.code
		WHERE d.round_id = $1 AND d.quantity > 0 AND s.is_active = TRUE
		GROUP BY s.id, s.shop_code, s.shop_name, d.product_code, p.name
		ORDER BY s.shop_code, d.product_code`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShopAllocation
	for rows.Next() {
		var (
			shopID   int64
			shopCode string
			shopName string
			item     AllocationItem
		)
		if err := rows.Scan(&shopID, &shopCode, &shopName, &item.ProductCode, &item.ProductName, &item.Quantity); err != nil {
			return nil, err
		}
		if len(result) == 0 || result[len(result)-1].ShopID != shopID {
			result = append(result, ShopAllocation{ShopID: shopID, ShopCode: shopCode, ShopName: shopName})
		}
		last := &result[len(result)-1]
		last.Items = append(last.Items, item)
	}
	return result, rows.Err()
}

// MatrixByRound returns every product with its received total and one
// cell per active shop, zeroes included.
func (r *Repository) MatrixByRound(ctx context.Context, roundID int64) ([]MatrixRow, error) {
	shopRows, err := r.pool.Query(ctx, `SELECT id, shop_code, shop_name FROM shops WHERE is_active = TRUE ORDER BY shop_code`)
	if err != nil {
		return nil, err
	}
	defer shopRows.Close()

	var shops []ShopQuantity
	for shopRows.Next() {
		var s ShopQuantity
		if err := shopRows.Scan(&s.ShopID, &s.ShopCode, &s.ShopName); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	if err := shopRows.Err(); err != nil {
		return nil, err
	}

	productRows, err := r.pool.Query(ctx, `
		SELECT p.code, p.name, p.small_units_per_big, p.cost_price_small, p.sell_price_small,
		       COALESCE(i.quantity_received, 0)
		FROM products p
		LEFT JOIN inventory_by_round i ON i.product_code = p.code AND i.round_id = $1
		ORDER BY p.code`, roundID)
	if err != nil {
		return nil, err
	}
	defer productRows.Close()

	var matrix []MatrixRow
	index := make(map[string]int)
	for productRows.Next() {
		var row MatrixRow
		if err := productRows.Scan(&row.ProductCode, &row.ProductName, &row.SmallUnitsPerBig, &row.CostPriceSmall, &row.SellPriceSmall, &row.QuantityReceived); err != nil {
			return nil, err
		}
		row.Shops = make([]ShopQuantity, len(shops))
		copy(row.Shops, shops)
		index[row.ProductCode] = len(matrix)
		matrix = append(matrix, row)
	}
	if err := productRows.Err(); err != nil {
		return nil, err
	}

	cellRows, err := r.pool.Query(ctx, `SELECT product_code, shop_id, quantity FROM shop_distribution WHERE round_id = $1`, roundID)
	if err != nil {
		return nil, err
	}
	defer cellRows.Close()

	for cellRows.Next() {
		var (
			productCode string
			shopID      int64
			quantity    int64
		)
		if err := cellRows.Scan(&productCode, &shopID, &quantity); err != nil {
			return nil, err
		}
		rowIdx, ok := index[productCode]
		if !ok {
			continue
		}
		for i := range matrix[rowIdx].Shops {
			if matrix[rowIdx].Shops[i].ShopID == shopID {
				matrix[rowIdx].Shops[i].Quantity = quantity
				break
			}
		}
	}
	return matrix, cellRows.Err()
}

func (r *txRepo) UpsertCell(ctx context.Context, productCode string, roundID, shopID, quantity int64) error {
	return upsertCell(ctx, r.tx, productCode, roundID, shopID, quantity)
}

func (r *txRepo) UpsertReceivedTotal(ctx context.Context, productCode string, roundID, total int64) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO inventory_by_round (product_code, round_id, quantity_received)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_code, round_id) DO UPDATE SET quantity_received = EXCLUDED.quantity_received`,
		productCode, roundID, total)
	return err
}

func (r *txRepo) Problems(ctx context.Context, roundID int64) ([]Problem, error) {
	return queryProblems(ctx, r.tx, roundID)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func upsertCell(ctx context.Context, q querier, productCode string, roundID, shopID, quantity int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO shop_distribution (product_code, round_id, shop_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_code, round_id, shop_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		productCode, roundID, shopID, quantity)
	return err
}

func queryProblems(ctx context.Context, q querier, roundID int64) ([]Problem, error) {
	rows, err := q.Query(ctx, `
		SELECT d.product_code, SUM(d.quantity) AS distributed, COALESCE(i.quantity_received, 0) AS received
		FROM shop_distribution d
		LEFT JOIN inventory_by_round i ON i.product_code = d.product_code AND i.round_id = d.round_id
		WHERE d.round_id = $1
		GROUP BY d.product_code, i.quantity_received
		HAVING SUM(d.quantity) > COALESCE(i.quantity_received, 0)
		ORDER BY d.product_code`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		var p Problem
		if err := rows.Scan(&p.ProductCode, &p.Distributed, &p.Received); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}
