package distribution

import (
	"context"
	"fmt"

	"github.com/roundstock/roundstock/internal/orders"
	"github.com/roundstock/roundstock/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Upsert(ctx context.Context, productCode string, roundID, shopID, quantity int64) error
	Problems(ctx context.Context, roundID int64) ([]Problem, error)
	AllocationsByRound(ctx context.Context, roundID int64) ([]ShopAllocation, error)
	MatrixByRound(ctx context.Context, roundID int64) ([]MatrixRow, error)
}

// OrderSummaryPort supplies aggregated ordered quantities used to
// prefill the allocation matrix.
type OrderSummaryPort interface {
	SummaryByRound(ctx context.Context, roundID int64) ([]orders.SummaryRow, error)
}

// CacheBumper invalidates derived report caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service maintains the per-round allocation matrix. Allocations may
// exceed received totals; exceeding ones are reported as problems and
// rejected only when the caller enforces the check.
type Service struct {
	repo   RepositoryPort
	orders OrderSummaryPort
	cache  CacheBumper
	audit  AuditPort
}

// NewService builds Service. orders, cache and audit may be nil.
func NewService(repo RepositoryPort, orderSummary OrderSummaryPort, cache CacheBumper, audit AuditPort) *Service {
	return &Service{repo: repo, orders: orderSummary, cache: cache, audit: audit}
}

// Set writes a single allocation cell. Repeating the same call leaves
// the matrix unchanged.
func (s *Service) Set(ctx context.Context, req SetRequest) error {
	if req.ProductCode == "" {
		return fmt.Errorf("%w: product code required", shared.ErrValidation)
	}
	if req.RoundID <= 0 || req.ShopID <= 0 {
		return fmt.Errorf("%w: round and shop required", shared.ErrValidation)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}
	if err := s.repo.Upsert(ctx, req.ProductCode, req.RoundID, req.ShopID, req.Quantity); err != nil {
		return err
	}
	s.bump(ctx)
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "distribution:set",
			Entity:   "shop_distribution",
			EntityID: req.ProductCode,
			Meta: map[string]any{
				"round_id": req.RoundID,
				"shop_id":  req.ShopID,
				"quantity": req.Quantity,
			},
		})
	}
	return nil
}

// BulkSet applies a full matrix edit in one transaction: each row's
// received total is written alongside its shop cells. With Enforce set
// the transaction rolls back when any product ends up over-allocated.
func (s *Service) BulkSet(ctx context.Context, roundID int64, req BulkSetRequest) ([]Problem, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: at least one row required", shared.ErrValidation)
	}
	for _, row := range req.Rows {
		if row.ProductCode == "" {
			return nil, fmt.Errorf("%w: product code required", shared.ErrValidation)
		}
		if row.QuantityReceived < 0 {
			return nil, fmt.Errorf("%w: received quantity must not be negative", shared.ErrValidation)
		}
		for _, cell := range row.Shops {
			if cell.Quantity < 0 {
				return nil, fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
			}
		}
	}

	var problems []Problem
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, row := range req.Rows {
			if err := tx.UpsertReceivedTotal(ctx, row.ProductCode, roundID, row.QuantityReceived); err != nil {
				return err
			}
			for _, cell := range row.Shops {
				if err := tx.UpsertCell(ctx, row.ProductCode, roundID, cell.ShopID, cell.Quantity); err != nil {
					return err
				}
			}
		}
		var err error
		problems, err = tx.Problems(ctx, roundID)
		if err != nil {
			return err
		}
		if req.Enforce && len(problems) > 0 {
			return fmt.Errorf("%w: %d product(s) exceed received totals", shared.ErrOverAllocated, len(problems))
		}
		return nil
	})
	if err != nil {
		return problems, err
	}

	s.bump(ctx)
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action: "distribution:bulk_set",
			Entity: "shop_distribution",
			Meta: map[string]any{
				"round_id": roundID,
				"rows":     len(req.Rows),
				"problems": len(problems),
			},
		})
	}
	return problems, nil
}

// Validate reports products whose distributed total exceeds the
// received total. An empty result means the round is consistent.
func (s *Service) Validate(ctx context.Context, roundID int64) ([]Problem, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.Problems(ctx, roundID)
}

// AutoFillFromOrders copies positive ordered quantities into the
// allocation matrix. Cells the orders never mention stay untouched.
// Returns the number of cells written.
func (s *Service) AutoFillFromOrders(ctx context.Context, roundID int64) (int, error) {
	if roundID <= 0 {
		return 0, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	if s.orders == nil {
		return 0, fmt.Errorf("order summary source not configured")
	}
	summary, err := s.orders.SummaryByRound(ctx, roundID)
	if err != nil {
		return 0, err
	}

	written := 0
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		for _, row := range summary {
			for _, cell := range row.Shops {
				if cell.Quantity <= 0 {
					continue
				}
				if err := tx.UpsertCell(ctx, row.ProductCode, roundID, cell.ShopID, cell.Quantity); err != nil {
					return err
				}
				written++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.bump(ctx)
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action: "distribution:autofill",
			Entity: "shop_distribution",
			Meta: map[string]any{
				"round_id": roundID,
				"cells":    written,
			},
		})
	}
	return written, nil
}

// AllocationsByRound returns picking lists for active shops.
func (s *Service) AllocationsByRound(ctx context.Context, roundID int64) ([]ShopAllocation, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.AllocationsByRound(ctx, roundID)
}

// MatrixByRound returns the full allocation matrix for the round.
func (s *Service) MatrixByRound(ctx context.Context, roundID int64) ([]MatrixRow, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.MatrixByRound(ctx, roundID)
}

func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}
