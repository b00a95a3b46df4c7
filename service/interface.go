package service

import (
	"github.com/shopspring/decimal"

	models "market-simulation/model"
)

type ServiceInterface interface {
	ListProducts() []models.Product
	CreateProduct(name string, price decimal.Decimal, stock int) (int, error)
	UpdateProduct(index int, patch models.ProductPatch) error
	DeleteProduct(index int) error

	AddToCart(productIndex, qty int) error
	RemoveFromCart(productIndex int) error
	GetCart() ([]models.CartItem, decimal.Decimal, error)
	Checkout() (models.Order, error)
}
