package orders

import "time"

// Order is a shop's order within a round. Orders represent demand and
// stay independent of distribution.
type Order struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	RoundID   int64     `json:"round_id"`
	ShopID    int64     `json:"shop_id"`
	ShopCode  string    `json:"shop_code,omitempty"`
	ShopName  string    `json:"shop_name,omitempty"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem references a product with a quantity and price.
type OrderItem struct {
	ID            int64   `json:"id"`
	OrderID       int64   `json:"order_id"`
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name,omitempty"`
	Quantity      int64   `json:"quantity"`
	PricePerSmall float64 `json:"price_per_small"`
}

// ShopCell is one shop's ordered quantity for a product.
type ShopCell struct {
	ShopID   int64  `json:"shop_id"`
	ShopCode string `json:"shop_code"`
	ShopName string `json:"shop_name"`
	Quantity int64  `json:"quantity"`
}

// SummaryRow aggregates ordered quantities for one product across all
// active shops. TotalOrdered always equals the sum of the shop cells.
type SummaryRow struct {
	ProductCode  string     `json:"product_code"`
	ProductName  string     `json:"product_name"`
	TotalOrdered int64      `json:"total_ordered"`
	Shops        []ShopCell `json:"shops"`
}

const statusDraft = "draft"
