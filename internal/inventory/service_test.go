package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/shared"
)

type memoryRepo struct {
	received map[string]int64
}

func (r *memoryRepo) GetByRound(ctx context.Context, roundID int64) ([]Row, error) {
	return nil, nil
}

func (r *memoryRepo) BulkUpsertReceived(ctx context.Context, roundID int64, rows []BulkUpdateRow) error {
	for _, row := range rows {
		r.received[row.ProductCode] = row.QuantityReceived
	}
	return nil
}

func TestBulkUpdateOverwritesTotals(t *testing.T) {
	repo := &memoryRepo{received: make(map[string]int64)}
	svc := NewService(repo, nil)
	ctx := context.Background()

	err := svc.BulkUpdate(ctx, 1, BulkUpdateRequest{Rows: []BulkUpdateRow{
		{ProductCode: "P001", QuantityReceived: 40},
	}})
	require.NoError(t, err)

	err = svc.BulkUpdate(ctx, 1, BulkUpdateRequest{Rows: []BulkUpdateRow{
		{ProductCode: "P001", QuantityReceived: 35},
	}})
	require.NoError(t, err)
	require.Equal(t, int64(35), repo.received["P001"])
}

func TestBulkUpdateValidation(t *testing.T) {
	repo := &memoryRepo{received: make(map[string]int64)}
	svc := NewService(repo, nil)
	ctx := context.Background()

	err := svc.BulkUpdate(ctx, 0, BulkUpdateRequest{Rows: []BulkUpdateRow{{ProductCode: "P001"}}})
	require.ErrorIs(t, err, shared.ErrValidation)

	err = svc.BulkUpdate(ctx, 1, BulkUpdateRequest{Rows: []BulkUpdateRow{{ProductCode: ""}}})
	require.ErrorIs(t, err, shared.ErrValidation)

	err = svc.BulkUpdate(ctx, 1, BulkUpdateRequest{Rows: []BulkUpdateRow{{ProductCode: "P001", QuantityReceived: -5}}})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, repo.received)
}
