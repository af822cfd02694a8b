package reports

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/roundstock/roundstock/internal/shared"
)

// FinancialsPort computes a round's financials from storage.
type FinancialsPort interface {
	RoundFinancials(ctx context.Context, roundID int64) (RoundFinancials, error)
}

// Service serves round financials through the versioned cache, with
// singleflight so concurrent misses rebuild once.
type Service struct {
	repo  FinancialsPort
	cache *Cache
	group singleflight.Group
}

// NewService builds Service. cache may be nil.
func NewService(repo FinancialsPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// RoundFinancials returns the round's cost, revenue and profit totals.
func (s *Service) RoundFinancials(ctx context.Context, roundID int64) (RoundFinancials, error) {
	if roundID <= 0 {
		return RoundFinancials{}, fmt.Errorf("%w: round required", shared.ErrValidation)
	}

	key, err := s.cache.BuildKey(ctx, keyFinancials(roundID))
	if err != nil {
		return RoundFinancials{}, err
	}

	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		var out RoundFinancials
		err := s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
			return s.repo.RoundFinancials(ctx, roundID)
		})
		return out, err
	})

	select {
	case <-ctx.Done():
		return RoundFinancials{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return RoundFinancials{}, res.Err
		}
		return res.Val.(RoundFinancials), nil
	}
}

// Invalidate bumps the cache version after a distribution or
// inventory write.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
