package store

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	models "market-simulation/model"
)

// ProductRow is a catalog entry as held by the store.
type ProductRow struct {
	ID    int64 // stable, never reused; cart lines point here
	Name  string
	Price decimal.Decimal
	Stock int
}

// CartRow is one cart line. It points at a product by ID, not position.
type CartRow struct {
	ProductID int64
	Quantity  int
}

// OrderRow is the header of a finished checkout.
type OrderRow struct {
	Total     decimal.Decimal
	CreatedAt time.Time
}

// OrderItemRow is a line of a finished checkout, priced at checkout time.
type OrderItemRow struct {
	ProductIndex int
	Name         string
	Quantity     int
	Price        decimal.Decimal
}

// MemoryStore keeps the catalog and the cart of a single session in memory.
// It is not safe for concurrent use.
type MemoryStore struct {
	products []ProductRow
	cart     []CartRow
	nextID   int64
	now      func() time.Time
}

// NewMemoryStore returns a store whose catalog holds seed, in order.
// Seed entries are validated like CreateProduct input.
func NewMemoryStore(seed ...models.Product) (*MemoryStore, error) {
	s := &MemoryStore{now: time.Now}
	for i, p := range seed {
		if _, err := s.CreateProduct(p.Name, p.Price, p.Stock); err != nil {
			return nil, errors.Wrapf(err, "seed product %d", i)
		}
	}
	return s, nil
}

// CreateProduct appends a product and returns its index.
func (s *MemoryStore) CreateProduct(name string, price decimal.Decimal, stock int) (int, error) {
	name = strings.TrimSpace(name)
	if err := ValidateProduct(name, price, stock); err != nil {
		return 0, err
	}
	s.nextID++
	s.products = append(s.products, ProductRow{ID: s.nextID, Name: name, Price: price, Stock: stock})
	return len(s.products) - 1, nil
}

// ListProducts returns a copy of the catalog in display order.
func (s *MemoryStore) ListProducts() []ProductRow {
	out := make([]ProductRow, len(s.products))
	copy(out, s.products)
	return out
}

// UpdateProduct applies the non-nil fields of patch. Either every field is
// applied or none is.
func (s *MemoryStore) UpdateProduct(index int, patch models.ProductPatch) error {
	p, err := s.product(index)
	if err != nil {
		return err
	}
	next := *p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if err := ValidateProduct(next.Name, next.Price, next.Stock); err != nil {
		return err
	}
	*p = next
	return nil
}

// DeleteProduct removes a product and every cart line pointing at it.
func (s *MemoryStore) DeleteProduct(index int) error {
	p, err := s.product(index)
	if err != nil {
		return err
	}
	id := p.ID
	s.products = append(s.products[:index], s.products[index+1:]...)

	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.ProductID != id {
			kept = append(kept, line)
		}
	}
	s.cart = kept
	return nil
}

// AddToCart puts qty units of a product in the cart, merging with an
// existing line. Stock is only checked here, not taken.
func (s *MemoryStore) AddToCart(productIndex, qty int) error {
	p, err := s.product(productIndex)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return errors.Wrap(ErrValidation, "quantity must be > 0")
	}

	line := s.line(p.ID)
	held := 0
	if line != nil {
		held = line.Quantity
	}
	if err := reserve(*p, held, qty); err != nil {
		return err
	}

	if line != nil {
		line.Quantity += qty
		return nil
	}
	s.cart = append(s.cart, CartRow{ProductID: p.ID, Quantity: qty})
	return nil
}

// RemoveFromCart deletes the cart line of a product.
func (s *MemoryStore) RemoveFromCart(productIndex int) error {
	p, err := s.product(productIndex)
	if err != nil {
		return err
	}
	for i, line := range s.cart {
		if line.ProductID == p.ID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "%s is not in the cart", p.Name)
}

// GetCart returns a copy of the cart lines in insertion order.
func (s *MemoryStore) GetCart() []CartRow {
	out := make([]CartRow, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal is the sum of quantity times current price over all lines.
func (s *MemoryStore) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.cart {
		if _, p := s.byID(line.ProductID); p != nil {
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return total
}

// Checkout takes the cart quantities out of stock and clears the cart.
// Every line is re-validated before anything is changed.
func (s *MemoryStore) Checkout() (OrderRow, []OrderItemRow, error) {
	var order OrderRow
	if len(s.cart) == 0 {
		return order, nil, ErrCartEmpty
	}

	items := make([]OrderItemRow, 0, len(s.cart))
	for _, line := range s.cart {
		idx, p := s.byID(line.ProductID)
		if p == nil {
			return order, nil, errors.Wrapf(ErrNotFound, "product %d", line.ProductID)
		}
		if err := reserve(*p, 0, line.Quantity); err != nil {
			return order, nil, err
		}
		items = append(items, OrderItemRow{ProductIndex: idx, Name: p.Name, Quantity: line.Quantity, Price: p.Price})
	}

	total := decimal.Zero
	for _, it := range items {
		s.products[it.ProductIndex].Stock -= it.Quantity
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	s.cart = nil

	order = OrderRow{Total: total, CreatedAt: s.now()}
	return order, items, nil
}

func (s *MemoryStore) product(index int) (*ProductRow, error) {
	if index < 0 || index >= len(s.products) {
		return nil, errors.Wrapf(ErrNotFound, "product index %d", index)
	}
	return &s.products[index], nil
}

func (s *MemoryStore) byID(id int64) (int, *ProductRow) {
	for i := range s.products {
		if s.products[i].ID == id {
			return i, &s.products[i]
		}
	}
	return -1, nil
}

func (s *MemoryStore) line(productID int64) *CartRow {
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			return &s.cart[i]
		}
	}
	return nil
}
