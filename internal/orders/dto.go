package orders

// CreateOrderRequest opens an order for a (round, shop). Code defaults
// to a generated one when omitted.
type CreateOrderRequest struct {
	RoundID int64   `json:"round_id" validate:"required,gt=0"`
	ShopID  int64   `json:"shop_id" validate:"required,gt=0"`
	Code    *string `json:"code,omitempty" validate:"omitempty,max=64"`
	Notes   *string `json:"notes,omitempty"`
}

// AddOrderItemRequest appends an item to an order.
type AddOrderItemRequest struct {
	ProductCode   string  `json:"product_code" validate:"required"`
	Quantity      int64   `json:"quantity" validate:"gte=0"`
	PricePerSmall float64 `json:"price_per_small" validate:"gte=0"`
}
