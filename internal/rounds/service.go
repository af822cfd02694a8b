package rounds

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/roundstock/roundstock/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Round, error)
	Get(ctx context.Context, id int64) (Round, error)
	Create(ctx context.Context, round Round) (Round, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) List(ctx context.Context) ([]Round, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Round, error) {
	if id <= 0 {
		return Round{}, fmt.Errorf("%w: invalid round id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRoundRequest) (Round, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Round{}, fmt.Errorf("%w: round name is required", shared.ErrValidation)
	}
	round, err := s.repo.Create(ctx, Round{
		Name:         req.Name,
		DeliveryDate: req.DeliveryDate,
		WeekNumber:   req.WeekNumber,
		Description:  req.Description,
	})
	if err != nil {
		return Round{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "rounds:create",
			Entity:   "delivery_round",
			EntityID: strconv.FormatInt(round.ID, 10),
			Meta:     map[string]any{"name": round.Name},
		})
	}
	return round, nil
}

// Delete removes the round and every dependent row in one transaction:
// receipt items, receipts, order items, orders, distribution rows and
// the derived inventory rows. Dependents go first so the round row can
// only disappear together with everything that references it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid round id", shared.ErrValidation)
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteReceiptItems(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteReceipts(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteOrderItems(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteOrders(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteDistribution(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteInventory(ctx, id); err != nil {
			return err
		}
		return tx.DeleteRound(ctx, id)
	})
	if err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "rounds:delete",
			Entity:   "delivery_round",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}
