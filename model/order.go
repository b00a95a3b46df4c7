package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line as seen from outside the store.
type CartItem struct {
	ProductIndex int             `json:"product_index"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Order is the receipt of a finished checkout.
type Order struct {
	ID        string          `json:"id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
