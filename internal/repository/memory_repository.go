package repository

import (
	"context"
	"sync"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
)

// MemoryRepository is an in-process CartRepository with the same versioning
// contract as the MongoDB implementation. Used in tests and local development.
type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (r *MemoryRepository) GetOrCreate(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		return copyCart(cart), nil
	}

	now := time.Now()
	cart := &domain.Cart{
		UserID:    userID,
		Items:     []domain.CartItem{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.carts[userID] = cart
	return copyCart(cart), nil
}

func (r *MemoryRepository) Replace(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	if !ok || stored.Version != cart.Version {
		return nil, ErrVersionConflict
	}

	next := copyCart(cart)
	next.Version = cart.Version + 1
	next.UpdatedAt = time.Now()
	next.CreatedAt = stored.CreatedAt
	r.carts[cart.UserID] = next
	return copyCart(next), nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = make([]domain.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
