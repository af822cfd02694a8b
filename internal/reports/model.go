package reports

// ProductFinancials is one product's contribution to a round.
type ProductFinancials struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Cost        float64 `json:"cost"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
}

// RoundFinancials sums distributed quantities against product prices.
// TotalProfit always equals TotalRevenue minus TotalCost.
type RoundFinancials struct {
	RoundID      int64               `json:"round_id"`
	TotalCost    float64             `json:"total_cost"`
	TotalRevenue float64             `json:"total_revenue"`
	TotalProfit  float64             `json:"total_profit"`
	Products     []ProductFinancials `json:"products"`
}
