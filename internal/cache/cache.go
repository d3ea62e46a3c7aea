package cache

import (
	"context"
	"errors"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
)

// CartCache is a read-through cache in front of the cart store. It is never
// the source of truth; writers invalidate, readers repopulate.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
