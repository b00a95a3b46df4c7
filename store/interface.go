package store

import (
	"github.com/shopspring/decimal"

	models "market-simulation/model"
)

// Store is the catalog+cart state of one session.
//
// Products are addressed by their 0-based position in the catalog. Deleting
// a product shifts every later product down by one.
type Store interface {
	CreateProduct(name string, price decimal.Decimal, stock int) (int, error)
	ListProducts() []ProductRow
	UpdateProduct(index int, patch models.ProductPatch) error
	DeleteProduct(index int) error

	AddToCart(productIndex, qty int) error
	RemoveFromCart(productIndex int) error
	GetCart() []CartRow
	CartTotal() decimal.Decimal

	Checkout() (OrderRow, []OrderItemRow, error)
}
