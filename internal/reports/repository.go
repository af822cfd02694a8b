package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository computes financials straight from the distribution rows.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RoundFinancials sums each product's distributed quantity for the
// round and prices it with the product's current cost and sell prices.
// Missing prices read as zero, so unpriced products contribute
// quantity but no money.
func (r *Repository) RoundFinancials(ctx context.Context, roundID int64) (RoundFinancials, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.product_code, COALESCE(p.name, ''), SUM(d.quantity),
		       COALESCE(p.cost_price_small, 0), COALESCE(p.sell_price_small, 0)
		FROM shop_distribution d
		LEFT JOIN products p ON d.product_code = p.code
		WHERE d.round_id = $1
		GROUP BY d.product_code, p.name, p.cost_price_small, p.sell_price_small
		ORDER BY d.product_code`, roundID)
	if err != nil {
		return RoundFinancials{}, err
	}
	defer rows.Close()

	result := RoundFinancials{RoundID: roundID}
	for rows.Next() {
		var (
			pf        ProductFinancials
			costEach  float64
			priceEach float64
		)
		if err := rows.Scan(&pf.ProductCode, &pf.ProductName, &pf.Quantity, &costEach, &priceEach); err != nil {
			return RoundFinancials{}, err
		}
		pf.Cost = float64(pf.Quantity) * costEach
		pf.Revenue = float64(pf.Quantity) * priceEach
		pf.Profit = pf.Revenue - pf.Cost
		result.Products = append(result.Products, pf)
		result.TotalCost += pf.Cost
		result.TotalRevenue += pf.Revenue
	}
	if err := rows.Err(); err != nil {
		return RoundFinancials{}, err
	}
	result.TotalProfit = result.TotalRevenue - result.TotalCost
	return result, nil
}
