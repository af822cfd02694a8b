package rounds

import "time"

// Round represents a delivery round grouping receipts, orders and
// distribution together.
type Round struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	WeekNumber   *int       `json:"week_number,omitempty"`
	Description  *string    `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateRoundRequest carries fields for a new delivery round.
type CreateRoundRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	WeekNumber   *int       `json:"week_number,omitempty" validate:"omitempty,gte=1,lte=53"`
	Description  *string    `json:"description,omitempty"`
}
