package receiving

import "time"

// Receipt models one receiving event inside a round. ReceiveNumber is
// sequential per round, assigned as max+1 when the caller omits it.
type Receipt struct {
	ID            int64     `json:"id"`
	RoundID       int64     `json:"round_id"`
	ReceiveNumber int       `json:"receive_number"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReceiptItem records a quantity of a product physically received.
type ReceiptItem struct {
	ID          int64  `json:"id"`
	ReceiptID   int64  `json:"receipt_id"`
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// CreateReceiptRequest starts a receiving session for a round.
type CreateReceiptRequest struct {
	RoundID       int64   `json:"round_id" validate:"required,gt=0"`
	ReceiveNumber *int    `json:"receive_number,omitempty" validate:"omitempty,gt=0"`
	Notes         *string `json:"notes,omitempty"`
}

// AddItemRequest appends a received quantity to a receipt.
type AddItemRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gte=0"`
}
