// Package clientcart is the UI-facing mirror of the authoritative cart. It is
// an explicit session-scoped object, never a package-level singleton: each
// signed-in session owns one Mirror wired to the cart service.
//
// The mirror never patches itself optimistically. Every mutation goes to the
// server and the mirror is replaced wholesale with the returned cart, so its
// total can never drift from the server's.
package clientcart

import (
	"context"
	"errors"
	"sync"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
)

// ErrMutationInFlight is returned when a mutation is attempted while another
// one is still pending, so a UI can disable duplicate submissions.
var ErrMutationInFlight = errors.New("another cart operation is in flight")

// CartOps is the authoritative cart API the mirror delegates to.
type CartOps interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, qty int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, productID int64, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) (*domain.Cart, error)
}

type Mirror struct {
	svc CartOps

	mu       sync.Mutex
	userID   string
	cart     *domain.Cart
	inFlight bool
}

func NewMirror(svc CartOps) *Mirror {
	return &Mirror{
		svc:  svc,
		cart: emptyCart(""),
	}
}

// SetIdentity switches the mirror to a new user. Previous state is discarded.
// An empty identity means signed out: the mirror holds an empty cart and no
// fetch happens. A non-empty identity triggers a refetch.
func (m *Mirror) SetIdentity(ctx context.Context, userID string) error {
	m.mu.Lock()
	m.userID = userID
	m.cart = emptyCart(userID)
	m.inFlight = false
	m.mu.Unlock()

	if userID == "" {
		return nil
	}
	return m.Refresh(ctx)
}

// Refresh refetches the authoritative cart. No-op when signed out.
func (m *Mirror) Refresh(ctx context.Context) error {
	m.mu.Lock()
	userID := m.userID
	m.mu.Unlock()
	if userID == "" {
		return nil
	}

	cart, err := m.svc.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	// identity may have changed while the fetch was in flight
	if m.userID == userID {
		m.cart = cart
	}
	m.mu.Unlock()
	return nil
}

// Cart returns the mirrored cart. The copy is the caller's to keep; the
// mirror's state cannot be mutated through it.
func (m *Mirror) Cart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *m.cart
	out.Items = append([]domain.CartItem(nil), m.cart.Items...)
	return out
}

// InFlight reports whether a mutation is pending.
func (m *Mirror) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

func (m *Mirror) AddItem(ctx context.Context, productID int64, qty int) error {
	return m.mutate(ctx, func(ctx context.Context, userID string) (*domain.Cart, error) {
		return m.svc.AddItem(ctx, userID, productID, qty)
	})
}

func (m *Mirror) UpdateQuantity(ctx context.Context, productID int64, qty int) error {
	return m.mutate(ctx, func(ctx context.Context, userID string) (*domain.Cart, error) {
		return m.svc.UpdateQuantity(ctx, userID, productID, qty)
	})
}

func (m *Mirror) RemoveItem(ctx context.Context, productID int64) error {
	return m.mutate(ctx, func(ctx context.Context, userID string) (*domain.Cart, error) {
		return m.svc.RemoveItem(ctx, userID, productID)
	})
}

func (m *Mirror) Clear(ctx context.Context) error {
	return m.mutate(ctx, func(ctx context.Context, userID string) (*domain.Cart, error) {
		return m.svc.ClearCart(ctx, userID)
	})
}

// mutate serializes mutations through the in-flight flag and replaces the
// mirror with the server's authoritative response.
func (m *Mirror) mutate(ctx context.Context, call func(context.Context, string) (*domain.Cart, error)) error {
	m.mu.Lock()
	if m.userID == "" {
		m.mu.Unlock()
		return errors.New("no identity set")
	}
	if m.inFlight {
		m.mu.Unlock()
		return ErrMutationInFlight
	}
	m.inFlight = true
	userID := m.userID
	m.mu.Unlock()

	cart, err := call(ctx, userID)

	m.mu.Lock()
	m.inFlight = false
	if err == nil && m.userID == userID {
		m.cart = cart
	}
	m.mu.Unlock()
	return err
}

func emptyCart(userID string) *domain.Cart {
	return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
}
