package store

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is returned for out-of-bounds input values.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound is returned for an unknown product index or cart line.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock returned when requested qty exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCartEmpty is returned by Checkout on an empty cart. It is a validation error.
	ErrCartEmpty = errors.Errorf("cart is empty: %w", ErrValidation)
)

// InsufficientStockError describes which product ran short.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Product, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// reserve checks that want more units of p fit next to the held ones.
func reserve(p ProductRow, held, want int) error {
	if want < 1 {
		return errors.Wrap(ErrValidation, "quantity must be > 0")
	}
	if want > p.Stock-held {
		avail := p.Stock - held
		if avail < 0 {
			avail = 0
		}
		return &InsufficientStockError{Product: p.Name, Requested: want, Available: avail}
	}
	return nil
}

// ValidateProduct checks the bounds every catalog entry must respect.
func ValidateProduct(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return errors.Wrap(ErrValidation, "name required")
	}
	if price.IsNegative() {
		return errors.Wrap(ErrValidation, "price must be >= 0")
	}
	if stock < 0 {
		return errors.Wrap(ErrValidation, "stock cannot be negative")
	}
	return nil
}
