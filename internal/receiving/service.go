package receiving

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roundstock/roundstock/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListByRound(ctx context.Context, roundID int64) ([]Receipt, error)
	ListItems(ctx context.Context, receiptID int64) ([]ReceiptItem, error)
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates receipts and keeps the derived per-round received
// totals consistent with the receipt items they are computed from.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// CreateReceipt opens a receiving session for a round.
func (s *Service) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (Receipt, error) {
	if req.RoundID <= 0 {
		return Receipt{}, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	if req.ReceiveNumber != nil && *req.ReceiveNumber <= 0 {
		return Receipt{}, fmt.Errorf("%w: receive number must be positive", shared.ErrValidation)
	}

	var receipt Receipt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		receipt, err = tx.InsertReceipt(ctx, req.RoundID, req.ReceiveNumber, req.Notes)
		return err
	})
	if err != nil {
		return Receipt{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "receiving:create",
			Entity:   "receipt",
			EntityID: strconv.FormatInt(receipt.ID, 10),
			Meta: map[string]any{
				"round_id":       receipt.RoundID,
				"receive_number": receipt.ReceiveNumber,
			},
		})
	}
	return receipt, nil
}

// AddItem appends a receipt item and, inside the same transaction,
// recomputes the round's received total for the product as the sum of
// all its receipt items. The recomputation is idempotent and does not
// depend on insertion order.
func (s *Service) AddItem(ctx context.Context, receiptID int64, req AddItemRequest) (ReceiptItem, error) {
	if receiptID <= 0 {
		return ReceiptItem{}, fmt.Errorf("%w: receipt required", shared.ErrValidation)
	}
	if req.ProductCode == "" {
		return ReceiptItem{}, fmt.Errorf("%w: product code required", shared.ErrValidation)
	}
	if req.Quantity < 0 {
		return ReceiptItem{}, fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}

	item := ReceiptItem{ReceiptID: receiptID, ProductCode: req.ProductCode, Quantity: req.Quantity}
	var roundID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		roundID, err = tx.ReceiptRound(ctx, receiptID)
		if err != nil {
			return err
		}
		item.ID, err = tx.InsertReceiptItem(ctx, receiptID, req.ProductCode, req.Quantity)
		if err != nil {
			return err
		}
		total, err := tx.SumReceivedQuantity(ctx, roundID, req.ProductCode)
		if err != nil {
			return err
		}
		return tx.UpsertReceivedTotal(ctx, roundID, req.ProductCode, total)
	})
	if err != nil {
		return ReceiptItem{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "receiving:add_item",
			Entity:   "receipt_item",
			EntityID: strconv.FormatInt(item.ID, 10),
			Meta: map[string]any{
				"round_id":     roundID,
				"product_code": req.ProductCode,
				"quantity":     req.Quantity,
			},
		})
	}
	return item, nil
}

// ListByRound returns the round's receipts.
func (s *Service) ListByRound(ctx context.Context, roundID int64) ([]Receipt, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.ListByRound(ctx, roundID)
}

// ListItems returns a receipt's items.
func (s *Service) ListItems(ctx context.Context, receiptID int64) ([]ReceiptItem, error) {
	if receiptID <= 0 {
		return nil, fmt.Errorf("%w: receipt required", shared.ErrValidation)
	}
	return s.repo.ListItems(ctx, receiptID)
}
