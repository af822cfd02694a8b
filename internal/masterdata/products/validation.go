package products

import (
	"fmt"
	"strings"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("%w: product code is required", internalshared.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", internalshared.ErrValidation)
	}
	if p.SmallUnitsPerBig < 1 {
		return fmt.Errorf("%w: small units per big must be at least 1", internalshared.ErrValidation)
	}
	if p.CostPriceSmall < 0 || p.SellPriceSmall < 0 {
		return fmt.Errorf("%w: prices must not be negative", internalshared.ErrValidation)
	}
	return nil
}
