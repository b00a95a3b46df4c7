package service

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	models "market-simulation/model"
	"market-simulation/store"
)

type Service struct {
	store store.Store
	log   zerolog.Logger
	newID func() string
}

func NewService(s store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log, newID: uuid.NewString}
}

func (s *Service) ListProducts() []models.Product {
	rows := s.store.ListProducts()
	out := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Product{Name: r.Name, Price: r.Price, Stock: r.Stock})
	}
	return out
}

func (s *Service) CreateProduct(name string, price decimal.Decimal, stock int) (int, error) {
	if err := store.ValidateProduct(strings.TrimSpace(name), price, stock); err != nil {
		return 0, err
	}
	idx, err := s.store.CreateProduct(name, price, stock)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("index", idx).Str("name", name).Str("price", price.StringFixed(2)).Int("stock", stock).Msg("product created")
	return idx, nil
}

func (s *Service) UpdateProduct(index int, patch models.ProductPatch) error {
	if patch.Empty() {
		return nil
	}
	if err := s.store.UpdateProduct(index, patch); err != nil {
		return err
	}
	ev := s.log.Info().Int("index", index)
	if patch.Name != nil {
		ev = ev.Str("name", *patch.Name)
	}
	if patch.Price != nil {
		ev = ev.Str("price", patch.Price.StringFixed(2))
	}
	if patch.Stock != nil {
		ev = ev.Int("stock", *patch.Stock)
	}
	ev.Msg("product updated")
	return nil
}

func (s *Service) DeleteProduct(index int) error {
	if err := s.store.DeleteProduct(index); err != nil {
		return err
	}
	s.log.Info().Int("index", index).Msg("product deleted")
	return nil
}

func (s *Service) AddToCart(productIndex, qty int) error {
	if qty <= 0 {
		return errors.Wrap(store.ErrValidation, "quantity must be > 0")
	}
	if err := s.store.AddToCart(productIndex, qty); err != nil {
		return err
	}
	s.log.Debug().Int("index", productIndex).Int("quantity", qty).Msg("added to cart")
	return nil
}

func (s *Service) RemoveFromCart(productIndex int) error {
	if err := s.store.RemoveFromCart(productIndex); err != nil {
		return err
	}
	s.log.Debug().Int("index", productIndex).Msg("removed from cart")
	return nil
}

// GetCart joins the cart lines with the catalog for display. The total comes
// from the store.
func (s *Service) GetCart() ([]models.CartItem, decimal.Decimal, error) {
	rows := s.store.GetCart()
	products := s.store.ListProducts()

	byID := make(map[int64]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	out := make([]models.CartItem, 0, len(rows))
	for _, r := range rows {
		idx, ok := byID[r.ProductID]
		if !ok {
			return nil, decimal.Zero, errors.Wrapf(store.ErrNotFound, "product %d", r.ProductID)
		}
		p := products[idx]
		out = append(out, models.CartItem{
			ProductIndex: idx,
			Name:         p.Name,
			Quantity:     r.Quantity,
			UnitPrice:    p.Price,
			Subtotal:     p.Price.Mul(decimal.NewFromInt(int64(r.Quantity))),
		})
	}
	return out, s.store.CartTotal(), nil
}

func (s *Service) Checkout() (models.Order, error) {
	orderRow, items, err := s.store.Checkout()
	if err != nil {
		return models.Order{}, errors.Wrap(err, "checkout")
	}
	od := models.Order{
		ID:        s.newID(),
		Total:     orderRow.Total,
		CreatedAt: orderRow.CreatedAt,
		Items:     make([]models.CartItem, 0, len(items)),
	}
	for _, it := range items {
		od.Items = append(od.Items, models.CartItem{
			ProductIndex: it.ProductIndex,
			Name:         it.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.Price,
			Subtotal:     it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	s.log.Info().Str("order_id", od.ID).Int("lines", len(od.Items)).Str("total", od.Total.StringFixed(2)).Msg("checkout completed")
	return od, nil
}
