package receiving

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/shared"
)

type memoryRepo struct {
	receipts map[int64]Receipt
	items    []ReceiptItem
	totals   map[string]int64
	nextID   int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		receipts: make(map[int64]Receipt),
		totals:   make(map[string]int64),
	}
}

func totalKey(roundID int64, productCode string) string {
	return fmt.Sprintf("%d:%s", roundID, productCode)
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

func (r *memoryRepo) ListByRound(ctx context.Context, roundID int64) ([]Receipt, error) {
	var out []Receipt
	for _, rec := range r.receipts {
		if rec.RoundID == roundID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListItems(ctx context.Context, receiptID int64) ([]ReceiptItem, error) {
	var out []ReceiptItem
	for _, item := range r.items {
		if item.ReceiptID == receiptID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (tx *memoryTx) InsertReceipt(ctx context.Context, roundID int64, receiveNumber *int, notes *string) (Receipt, error) {
	num := 0
	for _, rec := range tx.repo.receipts {
		if rec.RoundID == roundID && rec.ReceiveNumber > num {
			num = rec.ReceiveNumber
		}
	}
	num++
	if receiveNumber != nil {
		num = *receiveNumber
	}
	tx.repo.nextID++
	rec := Receipt{ID: tx.repo.nextID, RoundID: roundID, ReceiveNumber: num, Notes: notes}
	tx.repo.receipts[rec.ID] = rec
	return rec, nil
}

func (tx *memoryTx) InsertReceiptItem(ctx context.Context, receiptID int64, productCode string, quantity int64) (int64, error) {
	tx.repo.nextID++
	tx.repo.items = append(tx.repo.items, ReceiptItem{ID: tx.repo.nextID, ReceiptID: receiptID, ProductCode: productCode, Quantity: quantity})
	return tx.repo.nextID, nil
}

func (tx *memoryTx) ReceiptRound(ctx context.Context, receiptID int64) (int64, error) {
	rec, ok := tx.repo.receipts[receiptID]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return rec.RoundID, nil
}

func (tx *memoryTx) SumReceivedQuantity(ctx context.Context, roundID int64, productCode string) (int64, error) {
	var total int64
	for _, item := range tx.repo.items {
		rec, ok := tx.repo.receipts[item.ReceiptID]
		if ok && rec.RoundID == roundID && item.ProductCode == productCode {
			total += item.Quantity
		}
	}
	return total, nil
}

func (tx *memoryTx) UpsertReceivedTotal(ctx context.Context, roundID int64, productCode string, total int64) error {
	tx.repo.totals[totalKey(roundID, productCode)] = total
	return nil
}

func TestReceiveNumberSequencing(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, first.ReceiveNumber)

	second, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1})
	require.NoError(t, err)
	require.Equal(t, 2, second.ReceiveNumber)

	seven := 7
	explicit, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1, ReceiveNumber: &seven})
	require.NoError(t, err)
	require.Equal(t, 7, explicit.ReceiveNumber)

	other, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 2})
	require.NoError(t, err)
	require.Equal(t, 1, other.ReceiveNumber)
}

func TestReconciliationSumsAcrossReceipts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1})
	require.NoError(t, err)
	second, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, first.ID, AddItemRequest{ProductCode: "P001", Quantity: 30})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, second.ID, AddItemRequest{ProductCode: "P001", Quantity: 20})
	require.NoError(t, err)

	require.Equal(t, int64(50), repo.totals[totalKey(1, "P001")])
}

func TestReconciliationOrderIndependent(t *testing.T) {
	quantities := []int64{5, 12, 3, 40}
	permutations := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}}

	for _, perm := range permutations {
		repo := newMemoryRepo()
		svc := NewService(repo, nil)
		ctx := context.Background()

		receipt, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 9})
		require.NoError(t, err)

		for _, idx := range perm {
			_, err := svc.AddItem(ctx, receipt.ID, AddItemRequest{ProductCode: "P002", Quantity: quantities[idx]})
			require.NoError(t, err)
		}
		require.Equal(t, int64(60), repo.totals[totalKey(9, "P002")])
	}
}

func TestAddItemRejectsNegativeQuantity(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	receipt, err := svc.CreateReceipt(ctx, CreateReceiptRequest{RoundID: 1})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, receipt.ID, AddItemRequest{ProductCode: "P001", Quantity: -1})
	require.ErrorIs(t, err, shared.ErrValidation)

	// zero is accepted as given
	_, err = svc.AddItem(ctx, receipt.ID, AddItemRequest{ProductCode: "P001", Quantity: 0})
	require.NoError(t, err)
	require.Equal(t, int64(0), repo.totals[totalKey(1, "P001")])
}

func TestAddItemUnknownReceipt(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	_, err := svc.AddItem(context.Background(), 42, AddItemRequest{ProductCode: "P001", Quantity: 1})
	require.ErrorIs(t, err, shared.ErrNotFound)
}
