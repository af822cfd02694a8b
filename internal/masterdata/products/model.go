package products

import "time"

// Product represents a product entity. Code is the immutable natural key.
type Product struct {
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	SmallUnitsPerBig int       `json:"small_units_per_big"`
	CostPriceSmall   float64   `json:"cost_price_small"`
	SellPriceSmall   float64   `json:"sell_price_small"`
	ImagePath        *string   `json:"image_path,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
