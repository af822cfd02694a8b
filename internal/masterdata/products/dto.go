package products

// CreateProductRequest carries fields for a new product.
type CreateProductRequest struct {
	Code             string  `json:"code" validate:"required,max=32"`
	Name             string  `json:"name" validate:"required,max=255"`
	SmallUnitsPerBig int     `json:"small_units_per_big" validate:"gte=1"`
	CostPriceSmall   float64 `json:"cost_price_small" validate:"gte=0"`
	SellPriceSmall   float64 `json:"sell_price_small" validate:"gte=0"`
	ImagePath        *string `json:"image_path,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// UpdateProductRequest carries mutable attributes; the code never changes.
type UpdateProductRequest struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	SmallUnitsPerBig *int     `json:"small_units_per_big,omitempty" validate:"omitempty,gte=1"`
	CostPriceSmall   *float64 `json:"cost_price_small,omitempty" validate:"omitempty,gte=0"`
	SellPriceSmall   *float64 `json:"sell_price_small,omitempty" validate:"omitempty,gte=0"`
	ImagePath        *string  `json:"image_path,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// BulkUpsertRequest applies a list of product upserts in one transaction.
type BulkUpsertRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}
