// Package checkout turns a non-empty cart into a durable order. The one hard
// rule: the cart is cleared only after the order snapshot is committed, so a
// storage failure can lose an order attempt but never the cart behind it.
package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/google/uuid"
)

// CartAccess is the slice of the cart service checkout needs. CurrentCart
// must be an authoritative store read, not a cached one: the order snapshot
// is built from it and the cart is destroyed right after, so a stale mirror
// here would record the wrong purchase.
type CartAccess interface {
	CurrentCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) (*domain.Cart, error)
}

// OrderStore persists the order snapshot. CreateOrder must be atomic: either
// the full snapshot is durable or nothing is.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

// Receipt is what the buyer gets back from a successful checkout.
type Receipt struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}

type Orchestrator struct {
	carts          CartAccess
	orders         OrderStore
	persistTimeout time.Duration
}

func NewOrchestrator(carts CartAccess, orders OrderStore, persistTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		carts:          carts,
		orders:         orders,
		persistTimeout: persistTimeout,
	}
}

// Checkout validates the cart and inputs, persists the order snapshot under a
// bounded timeout, then clears the cart. A persist failure leaves the cart
// untouched and surfaces a retryable error.
func (o *Orchestrator) Checkout(ctx context.Context, userID string, shipping domain.ShippingInfo, paymentMethod string) (*Receipt, error) {
	cart, err := o.carts.CurrentCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if !shipping.Complete() {
		return nil, domain.ErrMissingShipping
	}
	if paymentMethod == "" {
		return nil, domain.ErrMissingPayment
	}

	order := snapshotOrder(cart, shipping, paymentMethod)

	pctx, cancel := context.WithTimeout(ctx, o.persistTimeout)
	defer cancel()
	if err := o.orders.CreateOrder(pctx, order); err != nil {
		// Cart untouched; the caller may retry the whole checkout.
		return nil, fmt.Errorf("order not recorded, cart left intact: %w", err)
	}

	// The order is durable from here on. A failed clear leaves a stale cart
	// but never an unrecorded purchase; the buyer's next mutation or clear
	// resolves it.
	if _, err := o.carts.ClearCart(ctx, userID); err != nil {
		log.Printf("checkout: order %s recorded but cart clear failed for user %s: %v", order.ID, userID, err)
	}

	return &Receipt{OrderID: order.ID, Total: order.TotalAmount}, nil
}

func snapshotOrder(cart *domain.Cart, shipping domain.ShippingInfo, paymentMethod string) *domain.Order {
	items := make([]domain.OrderItem, len(cart.Items))
	for i, it := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Subtotal(),
		}
	}

	now := time.Now()
	return &domain.Order{
		ID:            mintOrderID(),
		UserID:        cart.UserID,
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		Currency:      domain.DefaultCurrency,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		Status:        domain.OrderStatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func mintOrderID() string {
	return "ord-" + uuid.NewString()
}
