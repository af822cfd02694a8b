package shops

import (
	"context"
	"fmt"
	"strings"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Shop, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (Shop, error) {
	if id <= 0 {
		return Shop{}, fmt.Errorf("%w: invalid shop id", internalshared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateShopRequest) (Shop, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return Shop{}, fmt.Errorf("%w: shop code and name are required", internalshared.ErrValidation)
	}
	return s.repo.Create(ctx, Shop{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateShopRequest) (Shop, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Shop{}, err
	}
	if req.Code != nil {
		current.Code = *req.Code
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if strings.TrimSpace(current.Code) == "" || strings.TrimSpace(current.Name) == "" {
		return Shop{}, fmt.Errorf("%w: shop code and name are required", internalshared.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, current); err != nil {
		return Shop{}, err
	}
	return current, nil
}

// Delete soft-deletes referenced shops and hard-deletes unreferenced ones.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid shop id", internalshared.ErrValidation)
	}
	referenced, err := s.repo.Referenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return s.repo.Deactivate(ctx, id)
	}
	return s.repo.HardDelete(ctx, id)
}
