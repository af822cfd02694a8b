package orders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, order Order) (Order, error)
	InsertItem(ctx context.Context, item OrderItem) (OrderItem, error)
	OrderExists(ctx context.Context, orderID int64) (bool, error)
	ListByRound(ctx context.Context, roundID int64) ([]Order, error)
	ListItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	SummaryShops(ctx context.Context, roundID int64) ([]ShopCell, error)
	OrderedQuantities(ctx context.Context, roundID int64) (map[string]map[int64]int64, map[string]string, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order Order) (Order, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO orders (order_code, round_id, shop_id, status, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		order.Code, order.RoundID, order.ShopID, order.Status, order.Notes, now).Scan(&order.ID)
	if err != nil {
		return Order{}, internalshared.ClassifyPgError(err)
	}
	order.CreatedAt = now
	return order, nil
}

func (r *repository) InsertItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO order_items (order_id, product_code, quantity, price_per_small) VALUES ($1, $2, $3, $4) RETURNING id`,
		item.OrderID, item.ProductCode, item.Quantity, item.PricePerSmall).Scan(&item.ID)
	if err != nil {
		return OrderItem{}, internalshared.ClassifyPgError(err)
	}
	return item, nil
}

func (r *repository) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
	return exists, err
}

func (r *repository) ListByRound(ctx context.Context, roundID int64) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.order_code, o.round_id, o.shop_id, COALESCE(s.shop_code, ''), COALESCE(s.shop_name, ''), o.status, o.notes, o.created_at
		FROM orders o
		LEFT JOIN shops s ON o.shop_id = s.id
		WHERE o.round_id = $1
		ORDER BY o.id DESC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Code, &o.RoundID, &o.ShopID, &o.ShopCode, &o.ShopName, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_code, COALESCE(p.name, ''), oi.quantity, oi.price_per_small
		FROM order_items oi
		LEFT JOIN products p ON oi.product_code = p.code
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductCode, &item.ProductName, &item.Quantity, &item.PricePerSmall); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// SummaryShops returns the shops a round's summary carries cells for:
// every active shop plus any deactivated shop that still has orders in
// the round, so historical quantities keep their column.
func (r *repository) SummaryShops(ctx context.Context, roundID int64) ([]ShopCell, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, shop_code, shop_name FROM shops
		WHERE is_active = TRUE
		   OR id IN (SELECT shop_id FROM orders WHERE round_id = $1)
		ORDER BY shop_code`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []ShopCell
	for rows.Next() {
		var s ShopCell
		if err := rows.Scan(&s.ShopID, &s.ShopCode, &s.ShopName); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

// OrderedQuantities returns product -> shop -> summed quantity for the
// round, plus product names keyed by code.
func (r *repository) OrderedQuantities(ctx context.Context, roundID int64) (map[string]map[int64]int64, map[string]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.product_code, COALESCE(p.name, ''), o.shop_id, SUM(oi.quantity)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		LEFT JOIN products p ON oi.product_code = p.code
		WHERE o.round_id = $1
		GROUP BY oi.product_code, p.name, o.shop_id`, roundID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	quantities := make(map[string]map[int64]int64)
	names := make(map[string]string)
	for rows.Next() {
		var (
			productCode string
			productName string
			shopID      int64
			qty         int64
		)
		if err := rows.Scan(&productCode, &productName, &shopID, &qty); err != nil {
			return nil, nil, err
		}
		if quantities[productCode] == nil {
			quantities[productCode] = make(map[int64]int64)
		}
		quantities[productCode][shopID] = qty
		names[productCode] = productName
	}
	return quantities, names, rows.Err()
}
