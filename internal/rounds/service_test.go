package rounds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/shared"
)

type memoryRepo struct {
	rounds map[int64]Round
	nextID int64

	// dependent rows keyed by round id
	receiptItems map[int64]int
	receipts     map[int64]int
	orderItems   map[int64]int
	orders       map[int64]int
	distribution map[int64]int
	inventory    map[int64]int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		rounds:       make(map[int64]Round),
		receiptItems: make(map[int64]int),
		receipts:     make(map[int64]int),
		orderItems:   make(map[int64]int),
		orders:       make(map[int64]int),
		distribution: make(map[int64]int),
		inventory:    make(map[int64]int),
	}
}

func (r *memoryRepo) List(ctx context.Context) ([]Round, error) {
	var out []Round
	for _, rd := range r.rounds {
		out = append(out, rd)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Round, error) {
	rd, ok := r.rounds[id]
	if !ok {
		return Round{}, shared.ErrNotFound
	}
	return rd, nil
}

func (r *memoryRepo) Create(ctx context.Context, round Round) (Round, error) {
	r.nextID++
	round.ID = r.nextID
	r.rounds[round.ID] = round
	return round, nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

type memoryTx struct {
	repo *memoryRepo
}

func (t *memoryTx) DeleteReceiptItems(ctx context.Context, roundID int64) error {
	delete(t.repo.receiptItems, roundID)
	return nil
}

func (t *memoryTx) DeleteReceipts(ctx context.Context, roundID int64) error {
	delete(t.repo.receipts, roundID)
	return nil
}

func (t *memoryTx) DeleteOrderItems(ctx context.Context, roundID int64) error {
	delete(t.repo.orderItems, roundID)
	return nil
}

func (t *memoryTx) DeleteOrders(ctx context.Context, roundID int64) error {
	delete(t.repo.orders, roundID)
	return nil
}

func (t *memoryTx) DeleteDistribution(ctx context.Context, roundID int64) error {
	delete(t.repo.distribution, roundID)
	return nil
}

func (t *memoryTx) DeleteInventory(ctx context.Context, roundID int64) error {
	delete(t.repo.inventory, roundID)
	return nil
}

func (t *memoryTx) DeleteRound(ctx context.Context, roundID int64) error {
	if _, ok := t.repo.rounds[roundID]; !ok {
		return shared.ErrNotFound
	}
	delete(t.repo.rounds, roundID)
	return nil
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Record(ctx context.Context, log shared.AuditLog) error {
	a.actions = append(a.actions, log.Action)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.Create(context.Background(), CreateRoundRequest{Name: "  "})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAndDeleteAreAudited(t *testing.T) {
	audit := &recordingAudit{}
	svc := NewService(newMemoryRepo(), audit)
	ctx := context.Background()

	round, err := svc.Create(ctx, CreateRoundRequest{Name: "Week 12"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, round.ID))
	require.Equal(t, []string{"rounds:create", "rounds:delete"}, audit.actions)
}

func TestDeleteCascadesDependentRows(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	doomed, err := svc.Create(ctx, CreateRoundRequest{Name: "Week 12"})
	require.NoError(t, err)
	kept, err := svc.Create(ctx, CreateRoundRequest{Name: "Week 13"})
	require.NoError(t, err)

	for _, id := range []int64{doomed.ID, kept.ID} {
		repo.receiptItems[id] = 3
		repo.receipts[id] = 2
		repo.orderItems[id] = 4
		repo.orders[id] = 2
		repo.distribution[id] = 6
		repo.inventory[id] = 5
	}

	require.NoError(t, svc.Delete(ctx, doomed.ID))

	_, err = svc.Get(ctx, doomed.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.NotContains(t, repo.receiptItems, doomed.ID)
	require.NotContains(t, repo.receipts, doomed.ID)
	require.NotContains(t, repo.orderItems, doomed.ID)
	require.NotContains(t, repo.orders, doomed.ID)
	require.NotContains(t, repo.distribution, doomed.ID)
	require.NotContains(t, repo.inventory, doomed.ID)

	// the other round is untouched
	require.Contains(t, repo.receipts, kept.ID)
	require.Contains(t, repo.orders, kept.ID)
	require.Contains(t, repo.distribution, kept.ID)
	require.Contains(t, repo.inventory, kept.ID)
}

func TestDeleteUnknownRound(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	err := svc.Delete(context.Background(), 77)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
