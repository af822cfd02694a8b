package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReconcileAudit recomputes received totals from receipt items.
	TaskReconcileAudit = "reconcile:audit"
)

// ReconcileAuditPayload scopes the audit. RoundID zero audits every
// round.
type ReconcileAuditPayload struct {
	RoundID int64 `json:"round_id"`
}

// NewReconcileAuditTask constructs an Asynq task.
func NewReconcileAuditTask(roundID int64) (*asynq.Task, error) {
	data, err := json.Marshal(ReconcileAuditPayload{RoundID: roundID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReconcileAudit, data), nil
}
