package inventory

// Row is the derived per-(product, round) received total, joined with
// product attributes for display.
type Row struct {
	ID               int64   `json:"id"`
	ProductCode      string  `json:"product_code"`
	ProductName      string  `json:"product_name"`
	RoundID          int64   `json:"round_id"`
	QuantityReceived int64   `json:"quantity_received"`
	SmallUnitsPerBig int     `json:"small_units_per_big"`
	CostPriceSmall   float64 `json:"cost_price_small"`
	SellPriceSmall   float64 `json:"sell_price_small"`
}

// BulkUpdateRow overrides a product's received total for a round. This
// is the manual path that bypasses the receipt-derived recomputation.
type BulkUpdateRow struct {
	ProductCode      string `json:"product_code" validate:"required"`
	QuantityReceived int64  `json:"quantity_received" validate:"gte=0"`
}

// BulkUpdateRequest applies overrides in one transaction.
type BulkUpdateRequest struct {
	Rows []BulkUpdateRow `json:"rows" validate:"required,min=1,dive"`
}
