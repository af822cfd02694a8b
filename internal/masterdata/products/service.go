package products

import (
	"context"
	"fmt"

	"github.com/roundstock/roundstock/internal/masterdata/shared"
	internalshared "github.com/roundstock/roundstock/internal/shared"
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

// Prices feed the financial reports, so every successful write bumps
// the report cache version.
func (s *Service) bump(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, code string) (Product, error) {
	if code == "" {
		return Product{}, fmt.Errorf("%w: product code required", internalshared.ErrValidation)
	}
	return s.repo.Get(ctx, code)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	product := fromCreateRequest(req)
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	s.bump(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, code string, req UpdateProductRequest) (Product, error) {
	current, err := s.Get(ctx, code)
	if err != nil {
		return Product{}, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.SmallUnitsPerBig != nil {
		current.SmallUnitsPerBig = *req.SmallUnitsPerBig
	}
	if req.CostPriceSmall != nil {
		current.CostPriceSmall = *req.CostPriceSmall
	}
	if req.SellPriceSmall != nil {
		current.SellPriceSmall = *req.SellPriceSmall
	}
	if req.ImagePath != nil {
		current.ImagePath = req.ImagePath
	}
	if req.Notes != nil {
		current.Notes = req.Notes
	}
	if err := s.validate(current); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, code, current); err != nil {
		return Product{}, err
	}
	s.bump(ctx)
	return current, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("%w: product code required", internalshared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// BulkUpsert applies all rows in a single transaction.
func (s *Service) BulkUpsert(ctx context.Context, req BulkUpsertRequest) error {
	list := make([]Product, 0, len(req.Products))
	for _, item := range req.Products {
		p := fromCreateRequest(item)
		if err := s.validate(p); err != nil {
			return err
		}
		list = append(list, p)
	}
	if err := s.repo.BulkUpsert(ctx, list); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func fromCreateRequest(req CreateProductRequest) Product {
	unitsPerBig := req.SmallUnitsPerBig
	if unitsPerBig == 0 {
		unitsPerBig = 1
	}
	return Product{
		Code:             req.Code,
		Name:             req.Name,
		SmallUnitsPerBig: unitsPerBig,
		CostPriceSmall:   req.CostPriceSmall,
		SellPriceSmall:   req.SellPriceSmall,
		ImagePath:        req.ImagePath,
		Notes:            req.Notes,
	}
}
