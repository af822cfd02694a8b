package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/shared"
)

type memoryRepo struct {
	orders   map[int64]Order
	items    []OrderItem
	shops    []ShopCell
	inactive map[int64]bool
	nextID   int64
}

func newMemoryRepo(shops ...ShopCell) *memoryRepo {
	return &memoryRepo{orders: make(map[int64]Order), shops: shops, inactive: make(map[int64]bool)}
}

func (r *memoryRepo) Create(ctx context.Context, order Order) (Order, error) {
	for _, o := range r.orders {
		if o.Code == order.Code {
			return Order{}, shared.ErrDuplicate
		}
	}
	r.nextID++
	order.ID = r.nextID
	r.orders[order.ID] = order
	return order, nil
}

func (r *memoryRepo) InsertItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return item, nil
}

func (r *memoryRepo) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	_, ok := r.orders[orderID]
	return ok, nil
}

func (r *memoryRepo) ListByRound(ctx context.Context, roundID int64) ([]Order, error) {
	var out []Order
	for _, o := range r.orders {
		if o.RoundID == roundID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var out []OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepo) SummaryShops(ctx context.Context, roundID int64) ([]ShopCell, error) {
	var out []ShopCell
	for _, shop := range r.shops {
		if r.inactive[shop.ShopID] && !r.hasOrders(shop.ShopID, roundID) {
			continue
		}
		out = append(out, shop)
	}
	return out, nil
}

func (r *memoryRepo) hasOrders(shopID, roundID int64) bool {
	for _, o := range r.orders {
		if o.ShopID == shopID && o.RoundID == roundID {
			return true
		}
	}
	return false
}

func (r *memoryRepo) OrderedQuantities(ctx context.Context, roundID int64) (map[string]map[int64]int64, map[string]string, error) {
	quantities := make(map[string]map[int64]int64)
	names := make(map[string]string)
	for _, item := range r.items {
		order, ok := r.orders[item.OrderID]
		if !ok || order.RoundID != roundID {
			continue
		}
		if quantities[item.ProductCode] == nil {
			quantities[item.ProductCode] = make(map[int64]int64)
		}
		quantities[item.ProductCode][order.ShopID] += item.Quantity
		names[item.ProductCode] = item.ProductName
	}
	return quantities, names, nil
}

func TestCreateGeneratesCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	order, err := svc.Create(context.Background(), CreateOrderRequest{RoundID: 1, ShopID: 3})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(order.Code, "ORD-"))
	require.Equal(t, statusDraft, order.Status)

	custom := "SO-2024-001"
	explicit, err := svc.Create(context.Background(), CreateOrderRequest{RoundID: 1, ShopID: 3, Code: &custom})
	require.NoError(t, err)
	require.Equal(t, custom, explicit.Code)
}

func TestAddItemValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateOrderRequest{RoundID: 1, ShopID: 1})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, order.ID, AddOrderItemRequest{ProductCode: "", Quantity: 1})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.AddItem(ctx, order.ID, AddOrderItemRequest{ProductCode: "P001", Quantity: -2})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.AddItem(ctx, 999, AddOrderItemRequest{ProductCode: "P001", Quantity: 1})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSummaryTotalsMatchCells(t *testing.T) {
	repo := newMemoryRepo(
		ShopCell{ShopID: 1, ShopCode: "S01", ShopName: "North"},
		ShopCell{ShopID: 2, ShopCode: "S02", ShopName: "South"},
	)
	svc := NewService(repo, nil)
	ctx := context.Background()

	north, err := svc.Create(ctx, CreateOrderRequest{RoundID: 5, ShopID: 1})
	require.NoError(t, err)
	south, err := svc.Create(ctx, CreateOrderRequest{RoundID: 5, ShopID: 2})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, north.ID, AddOrderItemRequest{ProductCode: "P001", Quantity: 10})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, north.ID, AddOrderItemRequest{ProductCode: "P001", Quantity: 5})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, south.ID, AddOrderItemRequest{ProductCode: "P001", Quantity: 7})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, south.ID, AddOrderItemRequest{ProductCode: "P002", Quantity: 3})
	require.NoError(t, err)

	summary, err := svc.SummaryByRound(ctx, 5)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	first := summary[0]
	require.Equal(t, "P001", first.ProductCode)
	require.Equal(t, int64(22), first.TotalOrdered)
	require.Len(t, first.Shops, 2)
	require.Equal(t, int64(15), first.Shops[0].Quantity)
	require.Equal(t, int64(7), first.Shops[1].Quantity)

	// every row's total equals the sum of its cells, no double counting
	for _, row := range summary {
		var sum int64
		for _, cell := range row.Shops {
			sum += cell.Quantity
		}
		require.Equal(t, row.TotalOrdered, sum)
	}
}

func TestSummaryKeepsDeactivatedShopWithOrders(t *testing.T) {
	repo := newMemoryRepo(
		ShopCell{ShopID: 1, ShopCode: "S01", ShopName: "North"},
		ShopCell{ShopID: 2, ShopCode: "S02", ShopName: "South"},
	)
	svc := NewService(repo, nil)
	ctx := context.Background()

	south, err := svc.Create(ctx, CreateOrderRequest{RoundID: 4, ShopID: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, south.ID, AddOrderItemRequest{ProductCode: "P001", Quantity: 9})
	require.NoError(t, err)

	repo.inactive[2] = true

	summary, err := svc.SummaryByRound(ctx, 4)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.Equal(t, int64(9), summary[0].TotalOrdered)
	require.Len(t, summary[0].Shops, 2)
	require.Equal(t, "S02", summary[0].Shops[1].ShopCode)
	require.Equal(t, int64(9), summary[0].Shops[1].Quantity)

	// a round the deactivated shop never ordered in drops its cell
	summary, err = svc.SummaryByRound(ctx, 8)
	require.NoError(t, err)
	require.Empty(t, summary)
	shops, err := repo.SummaryShops(ctx, 8)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	require.Equal(t, "S01", shops[0].ShopCode)
}

func TestSummaryOmitsUnorderedProducts(t *testing.T) {
	repo := newMemoryRepo(ShopCell{ShopID: 1, ShopCode: "S01", ShopName: "North"})
	svc := NewService(repo, nil)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateOrderRequest{RoundID: 3, ShopID: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, order.ID, AddOrderItemRequest{ProductCode: "P009", Quantity: 0})
	require.NoError(t, err)

	summary, err := svc.SummaryByRound(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, summary)
}
