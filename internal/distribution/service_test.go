package distribution

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/orders"
	"github.com/roundstock/roundstock/internal/shared"
)

type cellKey struct {
	productCode string
	roundID     int64
	shopID      int64
}

type memoryRepo struct {
	cells    map[cellKey]int64
	received map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		cells:    make(map[cellKey]int64),
		received: make(map[string]int64),
	}
}

func receivedKey(productCode string, roundID int64) string {
	return fmt.Sprintf("%s:%d", productCode, roundID)
}

type memoryTx struct {
	repo     *memoryRepo
	cells    map[cellKey]int64
	received map[string]int64
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r, cells: make(map[cellKey]int64), received: make(map[string]int64)}
	for k, v := range r.cells {
		tx.cells[k] = v
	}
	for k, v := range r.received {
		tx.received[k] = v
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.cells = tx.cells
	r.received = tx.received
	return nil
}

func (r *memoryRepo) Upsert(ctx context.Context, productCode string, roundID, shopID, quantity int64) error {
	r.cells[cellKey{productCode, roundID, shopID}] = quantity
	return nil
}

func (r *memoryRepo) Problems(ctx context.Context, roundID int64) ([]Problem, error) {
	return problemsOf(r.cells, r.received, roundID), nil
}

func (r *memoryRepo) AllocationsByRound(ctx context.Context, roundID int64) ([]ShopAllocation, error) {
	return nil, nil
}

func (r *memoryRepo) MatrixByRound(ctx context.Context, roundID int64) ([]MatrixRow, error) {
	return nil, nil
}

func (tx *memoryTx) UpsertCell(ctx context.Context, productCode string, roundID, shopID, quantity int64) error {
	tx.cells[cellKey{productCode, roundID, shopID}] = quantity
	return nil
}

func (tx *memoryTx) UpsertReceivedTotal(ctx context.Context, productCode string, roundID, total int64) error {
	tx.received[receivedKey(productCode, roundID)] = total
	return nil
}

func (tx *memoryTx) Problems(ctx context.Context, roundID int64) ([]Problem, error) {
	return problemsOf(tx.cells, tx.received, roundID), nil
}

func problemsOf(cells map[cellKey]int64, received map[string]int64, roundID int64) []Problem {
	distributed := make(map[string]int64)
	for k, qty := range cells {
		if k.roundID == roundID {
			distributed[k.productCode] += qty
		}
	}
	var problems []Problem
	for code, total := range distributed {
		got := received[receivedKey(code, roundID)]
		if total > got {
			problems = append(problems, Problem{ProductCode: code, Distributed: total, Received: got})
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].ProductCode < problems[j].ProductCode })
	return problems
}

type stubSummary struct {
	rows []orders.SummaryRow
}

func (s *stubSummary) SummaryByRound(ctx context.Context, roundID int64) ([]orders.SummaryRow, error) {
	return s.rows, nil
}

func TestSetIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()

	req := SetRequest{ProductCode: "P001", RoundID: 1, ShopID: 2, Quantity: 10}
	require.NoError(t, svc.Set(ctx, req))
	require.NoError(t, svc.Set(ctx, req))

	require.Equal(t, int64(10), repo.cells[cellKey{"P001", 1, 2}])
	require.Len(t, repo.cells, 1)
}

func TestSetRejectsNegativeQuantity(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil, nil)
	err := svc.Set(context.Background(), SetRequest{ProductCode: "P001", RoundID: 1, ShopID: 1, Quantity: -1})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestBulkSetReportsOverAllocation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()

	// 55 distributed against 50 received: advisory problem, write kept
	problems, err := svc.BulkSet(ctx, 1, BulkSetRequest{Rows: []BulkSetRow{{
		ProductCode:      "P001",
		QuantityReceived: 50,
		Shops: []ShopQuantity{
			{ShopID: 1, Quantity: 20},
			{ShopID: 2, Quantity: 35},
		},
	}}})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, Problem{ProductCode: "P001", Distributed: 55, Received: 50}, problems[0])
	require.Equal(t, int64(35), repo.cells[cellKey{"P001", 1, 2}])

	// reducing the second shop to 30 clears the problem
	problems, err = svc.BulkSet(ctx, 1, BulkSetRequest{Rows: []BulkSetRow{{
		ProductCode:      "P001",
		QuantityReceived: 50,
		Shops: []ShopQuantity{
			{ShopID: 1, Quantity: 20},
			{ShopID: 2, Quantity: 30},
		},
	}}})
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestBulkSetEnforceRollsBack(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()

	problems, err := svc.BulkSet(ctx, 1, BulkSetRequest{
		Enforce: true,
		Rows: []BulkSetRow{{
			ProductCode:      "P001",
			QuantityReceived: 50,
			Shops: []ShopQuantity{
				{ShopID: 1, Quantity: 20},
				{ShopID: 2, Quantity: 35},
			},
		}},
	})
	require.ErrorIs(t, err, shared.ErrOverAllocated)
	require.Empty(t, repo.cells)
	require.Empty(t, repo.received)

	// the rejected rows still come back so the caller knows what to fix
	require.Equal(t, []Problem{{ProductCode: "P001", Distributed: 55, Received: 50}}, problems)
}

func TestAutoFillCopiesPositiveCellsOnly(t *testing.T) {
	repo := newMemoryRepo()
	summary := &stubSummary{rows: []orders.SummaryRow{
		{
			ProductCode:  "P001",
			TotalOrdered: 12,
			Shops: []orders.ShopCell{
				{ShopID: 1, Quantity: 12},
				{ShopID: 2, Quantity: 0},
			},
		},
		{
			ProductCode:  "P002",
			TotalOrdered: 4,
			Shops: []orders.ShopCell{
				{ShopID: 2, Quantity: 4},
			},
		},
	}}
	svc := NewService(repo, summary, nil, nil)

	written, err := svc.AutoFillFromOrders(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, written)
	require.Equal(t, int64(12), repo.cells[cellKey{"P001", 7, 1}])
	require.Equal(t, int64(4), repo.cells[cellKey{"P002", 7, 2}])
	_, zeroWritten := repo.cells[cellKey{"P001", 7, 2}]
	require.False(t, zeroWritten)
}

func TestValidateRequiresRound(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil, nil)
	_, err := svc.Validate(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}
