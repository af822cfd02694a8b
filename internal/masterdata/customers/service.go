package customers

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

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Customer, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer id", internalshared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return Customer{}, fmt.Errorf("%w: customer code and name are required", internalshared.ErrValidation)
	}
	return s.repo.Create(ctx, Customer{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Customer{}, err
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
		return Customer{}, fmt.Errorf("%w: customer code and name are required", internalshared.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, current); err != nil {
		return Customer{}, err
	}
	return current, nil
}

// Delete deactivates the customer; customer rows are never hard-deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid customer id", internalshared.ErrValidation)
	}
	return s.repo.Deactivate(ctx, id)
}
