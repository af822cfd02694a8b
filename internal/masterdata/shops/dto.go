package shops

// CreateShopRequest carries fields for a new shop.
type CreateShopRequest struct {
	Code    string  `json:"code" validate:"required,max=32"`
	Name    string  `json:"name" validate:"required,max=255"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// UpdateShopRequest carries mutable shop attributes.
type UpdateShopRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	IsActive *bool   `json:"is_active,omitempty"`
}
