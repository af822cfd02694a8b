package receiving

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

// Repository persists receipts in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes transactional operations used by the service.
type TxRepository interface {
	InsertReceipt(ctx context.Context, roundID int64, receiveNumber *int, notes *string) (Receipt, error)
	InsertReceiptItem(ctx context.Context, receiptID int64, productCode string, quantity int64) (int64, error)
	ReceiptRound(ctx context.Context, receiptID int64) (int64, error)
	SumReceivedQuantity(ctx context.Context, roundID int64, productCode string) (int64, error)
	UpsertReceivedTotal(ctx context.Context, roundID int64, productCode string, total int64) error
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

// ListByRound returns the round's receipts ordered by receive number.
func (r *Repository) ListByRound(ctx context.Context, roundID int64) ([]Receipt, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, round_id, receive_number, notes, created_at FROM receipts WHERE round_id = $1 ORDER BY receive_number`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		var rec Receipt
		if err := rows.Scan(&rec.ID, &rec.RoundID, &rec.ReceiveNumber, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

// ListItems returns receipt items joined with product names.
func (r *Repository) ListItems(ctx context.Context, receiptID int64) ([]ReceiptItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ri.id, ri.receipt_id, ri.product_code, COALESCE(p.name, ''), ri.quantity
		FROM receipt_items ri
		LEFT JOIN products p ON ri.product_code = p.code
		WHERE ri.receipt_id = $1
		ORDER BY ri.id`, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ReceiptItem
	for rows.Next() {
		var item ReceiptItem
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.ProductCode, &item.ProductName, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertReceipt assigns max(receive_number)+1 atomically with the insert
// when no explicit number is supplied.
func (r *txRepo) InsertReceipt(ctx context.Context, roundID int64, receiveNumber *int, notes *string) (Receipt, error) {
	now := time.Now()
	rec := Receipt{RoundID: roundID, Notes: notes, CreatedAt: now}

	var err error
	if receiveNumber != nil {
		err = r.tx.QueryRow(ctx, `INSERT INTO receipts (round_id, receive_number, notes, created_at) VALUES ($1, $2, $3, $4) RETURNING id, receive_number`,
			roundID, *receiveNumber, notes, now).Scan(&rec.ID, &rec.ReceiveNumber)
	} else {
		err = r.tx.QueryRow(ctx, `
			INSERT INTO receipts (round_id, receive_number, notes, created_at)
			SELECT $1, COALESCE(MAX(receive_number), 0) + 1, $2, $3 FROM receipts WHERE round_id = $1
			RETURNING id, receive_number`,
			roundID, notes, now).Scan(&rec.ID, &rec.ReceiveNumber)
	}
	if err != nil {
		return Receipt{}, internalshared.ClassifyPgError(err)
	}
	return rec, nil
}

func (r *txRepo) InsertReceiptItem(ctx context.Context, receiptID int64, productCode string, quantity int64) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO receipt_items (receipt_id, product_code, quantity) VALUES ($1, $2, $3) RETURNING id`,
		receiptID, productCode, quantity).Scan(&id)
	if err != nil {
		return 0, internalshared.ClassifyPgError(err)
	}
	return id, nil
}

func (r *txRepo) ReceiptRound(ctx context.Context, receiptID int64) (int64, error) {
	var roundID int64
	err := r.tx.QueryRow(ctx, `SELECT round_id FROM receipts WHERE id = $1`, receiptID).Scan(&roundID)
	if err != nil {
		return 0, internalshared.ClassifyPgError(err)
	}
	return roundID, nil
}

func (r *txRepo) SumReceivedQuantity(ctx context.Context, roundID int64, productCode string) (int64, error) {
	var total int64
	err := r.tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(ri.quantity), 0)
		FROM receipt_items ri
		JOIN receipts rc ON ri.receipt_id = rc.id
		WHERE rc.round_id = $1 AND ri.product_code = $2`, roundID, productCode).Scan(&total)
	return total, err
}

func (r *txRepo) UpsertReceivedTotal(ctx context.Context, roundID int64, productCode string, total int64) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO inventory_by_round (product_code, round_id, quantity_received)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_code, round_id) DO UPDATE SET quantity_received = EXCLUDED.quantity_received`,
		productCode, roundID, total)
	return err
}
