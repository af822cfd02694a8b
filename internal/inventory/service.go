package inventory

import (
	"context"
	"fmt"

	"github.com/roundstock/roundstock/internal/shared"
)

// CacheBumper invalidates derived report caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache CacheBumper
}

func NewService(repo Repository, cache CacheBumper) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetByRound lists the round's inventory rows ordered by product code.
func (s *Service) GetByRound(ctx context.Context, roundID int64) ([]Row, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.GetByRound(ctx, roundID)
}

// BulkUpdate overwrites received totals for the round in one
// transaction. Callers use this to correct totals manually; receipt
// postings will overwrite these values again on the next recompute.
func (s *Service) BulkUpdate(ctx context.Context, roundID int64, req BulkUpdateRequest) error {
	if roundID <= 0 {
		return fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	for _, row := range req.Rows {
		if row.ProductCode == "" {
			return fmt.Errorf("%w: product code required", shared.ErrValidation)
		}
		if row.QuantityReceived < 0 {
			return fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
		}
	}
	if err := s.repo.BulkUpsertReceived(ctx, roundID, req.Rows); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	return nil
}
