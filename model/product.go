package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. Its position in the catalog is its identity
// as far as callers are concerned.
type Product struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductPatch carries the fields of an edit. Nil fields are left untouched.
type ProductPatch struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Stock == nil
}

// DefaultCatalog is the catalog a fresh session starts with.
func DefaultCatalog() []Product {
	return []Product{
		{Name: "Arroz", Price: decimal.RequireFromString("20.00"), Stock: 10},
		{Name: "Feijão", Price: decimal.RequireFromString("8.50"), Stock: 8},
		{Name: "Macarrão", Price: decimal.RequireFromString("5.00"), Stock: 15},
		{Name: "Óleo", Price: decimal.RequireFromString("7.00"), Stock: 5},
		{Name: "Açúcar", Price: decimal.RequireFromString("4.50"), Stock: 12},
	}
}
