package repository

import (
	"context"
	"errors"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
)

var (
	// ErrVersionConflict means a concurrent writer replaced the cart between
	// the caller's read and its Replace. The caller re-reads and retries.
	ErrVersionConflict = errors.New("cart was modified concurrently")

	// ErrStorageUnavailable wraps infrastructure failures of the cart store.
	ErrStorageUnavailable = errors.New("cart storage unavailable")
)

// CartRepository is the durable per-user cart store. Consumers define this
// interface; MongoDB is one implementation.
//
// GetOrCreate returns the caller's cart, lazily persisting an empty one on
// first touch. Replace overwrites the stored cart only if its version still
// matches cart.Version, so two concurrent read-modify-write cycles can never
// both commit from the same stale snapshot.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	Replace(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}
