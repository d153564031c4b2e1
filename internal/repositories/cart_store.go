package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/retailcore/pos-gateway/internal/cart"
	"github.com/retailcore/pos-gateway/internal/errors"
)

// CartStore holds live carts in memory. Carts are ephemeral working state;
// nothing here survives a restart, the inventory API owns everything durable.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[uuid.UUID]*cart.Cart),
	}
}

func (s *CartStore) Create(ctx context.Context) *cart.Cart {
	c := cart.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[c.ID] = c

	return c
}

func (s *CartStore) Get(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return nil, errors.NotFoundError("Cart not found")
	}

	return c, nil
}

func (s *CartStore) Delete(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, id)
}

func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.carts)
}
