package domain

import "time"

// CartItem is one product line in a user's cart, joined with the current
// product row for display and repricing.
type CartItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int64  `json:"-"`
	Quantity    int64  `json:"quantity"`
}

type Cart struct {
	UserID     int64      `json:"-"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Total sums quantity * unit price across items.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * item.Quantity
	}
	return total
}
