package orders

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/roundstock/roundstock/internal/shared"
)

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

type Service struct {
	repo  Repository
	audit AuditPort
}

func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Create opens an order for a (round, shop), generating a code when
// the caller omits one.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	if req.RoundID <= 0 || req.ShopID <= 0 {
		return Order{}, fmt.Errorf("%w: round and shop required", shared.ErrValidation)
	}
	code := ""
	if req.Code != nil {
		code = strings.TrimSpace(*req.Code)
	}
	if code == "" {
		code = fmt.Sprintf("ORD-%s", uuid.NewString())
	}
	order, err := s.repo.Create(ctx, Order{
		Code:    code,
		RoundID: req.RoundID,
		ShopID:  req.ShopID,
		Status:  statusDraft,
		Notes:   req.Notes,
	})
	if err != nil {
		return Order{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "orders:create",
			Entity:   "order",
			EntityID: strconv.FormatInt(order.ID, 10),
			Meta: map[string]any{
				"round_id": order.RoundID,
				"shop_id":  order.ShopID,
				"code":     order.Code,
			},
		})
	}
	return order, nil
}

// AddItem appends an item to an existing order.
func (s *Service) AddItem(ctx context.Context, orderID int64, req AddOrderItemRequest) (OrderItem, error) {
	if orderID <= 0 {
		return OrderItem{}, fmt.Errorf("%w: order required", shared.ErrValidation)
	}
	if req.ProductCode == "" {
		return OrderItem{}, fmt.Errorf("%w: product code required", shared.ErrValidation)
	}
	if req.Quantity < 0 {
		return OrderItem{}, fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}
	if req.PricePerSmall < 0 {
		return OrderItem{}, fmt.Errorf("%w: price must not be negative", shared.ErrValidation)
	}
	exists, err := s.repo.OrderExists(ctx, orderID)
	if err != nil {
		return OrderItem{}, err
	}
	if !exists {
		return OrderItem{}, fmt.Errorf("%w: order %d", shared.ErrNotFound, orderID)
	}
	return s.repo.InsertItem(ctx, OrderItem{
		OrderID:       orderID,
		ProductCode:   req.ProductCode,
		Quantity:      req.Quantity,
		PricePerSmall: req.PricePerSmall,
	})
}

func (s *Service) ListByRound(ctx context.Context, roundID int64) ([]Order, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	return s.repo.ListByRound(ctx, roundID)
}

func (s *Service) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order required", shared.ErrValidation)
	}
	return s.repo.ListItems(ctx, orderID)
}

// SummaryByRound sums order-item quantities by product and shop.
// Products with no ordered quantity are omitted; every returned row
// carries a cell for each active shop, zero when the shop ordered
// nothing. Deactivated shops with orders in the round keep their cell
// so their quantities stay counted in the totals.
func (s *Service) SummaryByRound(ctx context.Context, roundID int64) ([]SummaryRow, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round required", shared.ErrValidation)
	}
	shops, err := s.repo.SummaryShops(ctx, roundID)
	if err != nil {
		return nil, err
	}
	quantities, names, err := s.repo.OrderedQuantities(ctx, roundID)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(quantities))
	for code := range quantities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var summary []SummaryRow
	for _, code := range codes {
		row := SummaryRow{
			ProductCode: code,
			ProductName: names[code],
			Shops:       make([]ShopCell, len(shops)),
		}
		copy(row.Shops, shops)
		for i := range row.Shops {
			qty := quantities[code][row.Shops[i].ShopID]
			row.Shops[i].Quantity = qty
			row.TotalOrdered += qty
		}
		if row.TotalOrdered == 0 {
			continue
		}
		summary = append(summary, row)
	}
	return summary, nil
}
