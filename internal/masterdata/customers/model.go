package customers

import "time"

// Customer represents a buying customer.
type Customer struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCustomerRequest carries fields for a new customer.
type CreateCustomerRequest struct {
	Code    string  `json:"code" validate:"required,max=32"`
	Name    string  `json:"name" validate:"required,max=255"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// UpdateCustomerRequest carries mutable customer attributes.
type UpdateCustomerRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	IsActive *bool   `json:"is_active,omitempty"`
}
