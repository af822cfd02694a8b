package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReconcileAuditJob verifies that every stored received total matches
// the sum of its receipt items and repairs the rows that drifted.
type ReconcileAuditJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewReconcileAuditJob constructs the job.
func NewReconcileAuditJob(pool *pgxpool.Pool, logger *slog.Logger) *ReconcileAuditJob {
	return &ReconcileAuditJob{pool: pool, logger: logger}
}

// Handle processes TaskReconcileAudit tasks.
func (j *ReconcileAuditJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReconcileAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	repaired, err := j.Run(ctx, payload.RoundID)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("reconcile audit done",
			slog.Int64("round_id", payload.RoundID),
			slog.Int("repaired", repaired))
	}
	return nil
}

// Run recomputes receipt sums and upserts any total that disagrees.
// Returns the number of repaired rows.
func (j *ReconcileAuditJob) Run(ctx context.Context, roundID int64) (int, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT r.round_id, ri.product_code, SUM(ri.quantity) AS expected,
		       COALESCE(i.quantity_received, -1) AS stored
		FROM receipt_items ri
		JOIN receipts r ON ri.receipt_id = r.id
		LEFT JOIN inventory_by_round i ON i.product_code = ri.product_code AND i.round_id = r.round_id
		WHERE ($1 = 0 OR r.round_id = $1)
		GROUP BY r.round_id, ri.product_code, i.quantity_received
		HAVING SUM(ri.quantity) <> COALESCE(i.quantity_received, -1)`, roundID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type drift struct {
		roundID     int64
		productCode string
		expected    int64
		stored      int64
	}
	var drifts []drift
	for rows.Next() {
		var d drift
		if err := rows.Scan(&d.roundID, &d.productCode, &d.expected, &d.stored); err != nil {
			return 0, err
		}
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, d := range drifts {
		_, err := j.pool.Exec(ctx, `
			INSERT INTO inventory_by_round (product_code, round_id, quantity_received)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_code, round_id) DO UPDATE SET quantity_received = EXCLUDED.quantity_received`,
			d.productCode, d.roundID, d.expected)
		if err != nil {
			return 0, err
		}
		if j.logger != nil {
			j.logger.Warn("received total drift repaired",
				slog.Int64("round_id", d.roundID),
				slog.String("product_code", d.productCode),
				slog.Int64("stored", d.stored),
				slog.Int64("expected", d.expected))
		}
	}
	return len(drifts), nil
}
