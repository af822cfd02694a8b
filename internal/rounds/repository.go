package rounds

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	platformdb "github.com/roundstock/roundstock/internal/platform/db"
	internalshared "github.com/roundstock/roundstock/internal/shared"
)

// Repository persists delivery rounds in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the per-table deletes the cascade runs through.
type TxRepository interface {
	DeleteReceiptItems(ctx context.Context, roundID int64) error
	DeleteReceipts(ctx context.Context, roundID int64) error
	DeleteOrderItems(ctx context.Context, roundID int64) error
	DeleteOrders(ctx context.Context, roundID int64) error
	DeleteDistribution(ctx context.Context, roundID int64) error
	DeleteInventory(ctx context.Context, roundID int64) error
	DeleteRound(ctx context.Context, roundID int64) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a RepeatableRead transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return platformdb.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (r *Repository) List(ctx context.Context) ([]Round, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, round_name, delivery_date, week_number, description, created_at FROM delivery_rounds ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Round
	for rows.Next() {
		var round Round
		if err := rows.Scan(&round.ID, &round.Name, &round.DeliveryDate, &round.WeekNumber, &round.Description, &round.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, round)
	}
	return result, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (Round, error) {
	var round Round
	err := r.pool.QueryRow(ctx, `SELECT id, round_name, delivery_date, week_number, description, created_at FROM delivery_rounds WHERE id = $1`, id).
		Scan(&round.ID, &round.Name, &round.DeliveryDate, &round.WeekNumber, &round.Description, &round.CreatedAt)
	if err != nil {
		return Round{}, internalshared.ClassifyPgError(err)
	}
	return round, nil
}

func (r *Repository) Create(ctx context.Context, round Round) (Round, error) {
	now := time.Now()
	err := r.pool.QueryRow(ctx, `INSERT INTO delivery_rounds (round_name, delivery_date, week_number, description, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		round.Name, round.DeliveryDate, round.WeekNumber, round.Description, now).Scan(&round.ID)
	if err != nil {
		return Round{}, internalshared.ClassifyPgError(err)
	}
	round.CreatedAt = now
	return round, nil
}

func (r *txRepo) DeleteReceiptItems(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id IN (SELECT id FROM receipts WHERE round_id = $1)`, roundID)
	return err
}

func (r *txRepo) DeleteReceipts(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM receipts WHERE round_id = $1`, roundID)
	return err
}

func (r *txRepo) DeleteOrderItems(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE round_id = $1)`, roundID)
	return err
}

func (r *txRepo) DeleteOrders(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM orders WHERE round_id = $1`, roundID)
	return err
}

func (r *txRepo) DeleteDistribution(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM shop_distribution WHERE round_id = $1`, roundID)
	return err
}

func (r *txRepo) DeleteInventory(ctx context.Context, roundID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM inventory_by_round WHERE round_id = $1`, roundID)
	return err
}

// DeleteRound removes the round row itself and reports ErrNotFound when
// no row matched.
func (r *txRepo) DeleteRound(ctx context.Context, roundID int64) error {
	tag, err := r.tx.Exec(ctx, `DELETE FROM delivery_rounds WHERE id = $1`, roundID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalshared.ErrNotFound
	}
	return nil
}
