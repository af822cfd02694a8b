package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	platformdb "github.com/roundstock/roundstock/internal/platform/db"
)

type Repository interface {
	GetByRound(ctx context.Context, roundID int64) ([]Row, error)
	BulkUpsertReceived(ctx context.Context, roundID int64, rows []BulkUpdateRow) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) GetByRound(ctx context.Context, roundID int64) ([]Row, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.product_code, p.name, i.round_id, i.quantity_received,
		       p.small_units_per_big, COALESCE(p.cost_price_small, 0), COALESCE(p.sell_price_small, 0)
		FROM inventory_by_round i
		JOIN products p ON i.product_code = p.code
		WHERE i.round_id = $1
		ORDER BY i.product_code`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.ProductCode, &row.ProductName, &row.RoundID, &row.QuantityReceived,
			&row.SmallUnitsPerBig, &row.CostPriceSmall, &row.SellPriceSmall); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) BulkUpsertReceived(ctx context.Context, roundID int64, updates []BulkUpdateRow) error {
	return platformdb.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, row := range updates {
			_, err := tx.Exec(ctx, `
				INSERT INTO inventory_by_round (product_code, round_id, quantity_received)
				VALUES ($1, $2, $3)
				ON CONFLICT (product_code, round_id) DO UPDATE SET quantity_received = EXCLUDED.quantity_received`,
				row.ProductCode, roundID, row.QuantityReceived)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
