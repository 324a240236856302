// Package cart owns the shopping cart: an ordered sequence of product-keyed
// line items kept in sync with durable storage. The cart is not tied to a
// user; anonymous carts persist across login and logout. The store is the
// only writer of the persisted cart key.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Store is the cart state manager. Mutations apply to in-memory state first
// and are then persisted synchronously, in mutation order; a persistence
// failure is logged and never rolls back the in-memory change. Derived
// values (ItemCount, Total) are computed on read, never cached.
type Store struct {
	repo storage.Repository
	log  logging.Logger

	mu        sync.RWMutex
	items     []models.CartItem
	listeners []func()
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "cart")}
}

// Subscribe registers fn to be called after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore loads the persisted cart at process start. A missing key is an
// empty cart; a corrupt payload is treated the same way (and logged), never
// as a fatal error.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.repo.Get(ctx, storage.KeyCartItems)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted cart", "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn(ctx, "discarding corrupt persisted cart", "error", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem puts quantity units of product into the cart. If the product is
// already present its quantity grows instead of a second line appearing.
// Quantities are clamped to the product's stock when the stock is known
// (countInStock > 0); pushing past the cap is a silent no-op, not an error.
func (s *Store) AddItem(ctx context.Context, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	if i := s.index(product.ID); i >= 0 {
		s.items[i].Quantity = clampQuantity(s.items[i].Quantity+quantity, s.items[i].CountInStock)
	} else {
		s.items = append(s.items, models.NewCartItem(product, clampQuantity(quantity, product.CountInStock)))
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// RemoveItem deletes the line for productID. Removing an absent product is
// a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the quantity for productID. A value <= 0 removes the
// line (a zero-quantity row must never exist); otherwise the value is
// clamped to [1, countInStock] when the stock is known.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items[i].Quantity = clampQuantity(quantity, s.items[i].CountInStock)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart. Called after an order is confirmed.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount is the sum of quantities across all lines, not the line count.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is Σ price×quantity, recomputed on every read.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// index returns the position of productID, or -1. Caller holds the lock.
func (s *Store) index(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// persistLocked writes the current sequence to storage. Caller holds the
// lock, which keeps writes in mutation order.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error(ctx, "failed to serialize cart", "error", err)
		return
	}
	if err := s.repo.Set(ctx, storage.KeyCartItems, data); err != nil {
		s.log.Error(ctx, "failed to persist cart", "error", err)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func clampQuantity(quantity, countInStock int) int {
	if countInStock > 0 && quantity > countInStock {
		return countInStock
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
