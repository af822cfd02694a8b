package distribution

// ShopQuantity is one cell of the allocation matrix: the quantity of a
// product allocated to one shop. An explicit mapping is used instead of
// per-shop record fields so the shape stays statically typed.
type ShopQuantity struct {
	ShopID   int64  `json:"shop_id"`
	ShopCode string `json:"shop_code,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
	Quantity int64  `json:"quantity"`
}

// MatrixRow is one product's allocation across every active shop,
// alongside its received total for the round.
type MatrixRow struct {
	ProductCode      string         `json:"product_code"`
	ProductName      string         `json:"product_name"`
	SmallUnitsPerBig int            `json:"small_units_per_big"`
	CostPriceSmall   float64        `json:"cost_price_small"`
	SellPriceSmall   float64        `json:"sell_price_small"`
	QuantityReceived int64          `json:"quantity_received"`
	Shops            []ShopQuantity `json:"shops"`
}

// AllocationItem is one allocated product inside a shop's picking list.
type AllocationItem struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// ShopAllocation groups a shop's positive allocations for a round.
type ShopAllocation struct {
	ShopID   int64            `json:"shop_id"`
	ShopCode string           `json:"shop_code"`
	ShopName string           `json:"shop_name"`
	Items    []AllocationItem `json:"items"`
}

// Problem flags a product whose distributed total exceeds its received
// total. Advisory unless the caller opts into enforcement.
type Problem struct {
	ProductCode string `json:"product_code"`
	Distributed int64  `json:"distributed"`
	Received    int64  `json:"received"`
}

// SetRequest upserts a single (product, round, shop) quantity.
type SetRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	RoundID     int64  `json:"round_id" validate:"required,gt=0"`
	ShopID      int64  `json:"shop_id" validate:"required,gt=0"`
	Quantity    int64  `json:"quantity" validate:"gte=0"`
}

// BulkSetRow carries one product's received override plus shop cells.
type BulkSetRow struct {
	ProductCode      string         `json:"product_code" validate:"required"`
	QuantityReceived int64          `json:"quantity_received" validate:"gte=0"`
	Shops            []ShopQuantity `json:"shops" validate:"dive"`
}

// BulkSetRequest applies rows in one transaction. With Enforce set the
// whole batch is rejected when any product ends up over-allocated.
type BulkSetRequest struct {
	Rows    []BulkSetRow `json:"rows" validate:"required,min=1,dive"`
	Enforce bool         `json:"enforce"`
}
