package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/roundstock/roundstock/internal/shared"
)

type stubFinancials struct {
	result RoundFinancials
	calls  int
}

func (s *stubFinancials) RoundFinancials(ctx context.Context, roundID int64) (RoundFinancials, error) {
	s.calls++
	out := s.result
	out.RoundID = roundID
	return out, nil
}

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestRoundFinancialsProfitIdentity(t *testing.T) {
	stub := &stubFinancials{result: RoundFinancials{
		TotalCost:    500,
		TotalRevenue: 750,
		TotalProfit:  250,
		Products: []ProductFinancials{
			{ProductCode: "P001", Quantity: 50, Cost: 500, Revenue: 750, Profit: 250},
		},
	}}
	svc := NewService(stub, testCache(t))

	got, err := svc.RoundFinancials(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, float64(500), got.TotalCost)
	require.Equal(t, float64(750), got.TotalRevenue)
	require.Equal(t, float64(250), got.TotalProfit)
	require.InDelta(t, got.TotalRevenue-got.TotalCost, got.TotalProfit, 1e-9)
}

func TestRoundFinancialsCaches(t *testing.T) {
	stub := &stubFinancials{result: RoundFinancials{TotalRevenue: 10, TotalProfit: 10}}
	svc := NewService(stub, testCache(t))
	ctx := context.Background()

	first, err := svc.RoundFinancials(ctx, 2)
	require.NoError(t, err)
	second, err := svc.RoundFinancials(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, stub.calls)

	// a bump forces a rebuild on the next read
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.RoundFinancials(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)
}

func TestRoundFinancialsEmptyRound(t *testing.T) {
	stub := &stubFinancials{result: RoundFinancials{}}
	svc := NewService(stub, testCache(t))

	got, err := svc.RoundFinancials(context.Background(), 3)
	require.NoError(t, err)
	require.Zero(t, got.TotalCost)
	require.Zero(t, got.TotalRevenue)
	require.Zero(t, got.TotalProfit)
}

func TestRoundFinancialsWithoutCache(t *testing.T) {
	stub := &stubFinancials{result: RoundFinancials{TotalRevenue: 5, TotalProfit: 5}}
	svc := NewService(stub, nil)

	got, err := svc.RoundFinancials(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, float64(5), got.TotalRevenue)
}

func TestRoundFinancialsRequiresRound(t *testing.T) {
	svc := NewService(&stubFinancials{}, nil)
	_, err := svc.RoundFinancials(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}
