// Package reconcile holds the pure cart transformation rules: merge on add,
// clamp-to-remove on update, idempotent removal, and total recomputation.
// Nothing here touches storage; callers persist the returned item list.
package reconcile

import (
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
)

// Add merges quantity qty of a product into the item list. currentPrice and
// currentStock come from a live catalog read at call time. The existing
// quantity for the product (if any) counts against currentStock, so a cart
// already holding the whole stock cannot grow.
//
// On a merge the line's price snapshot is refreshed to currentPrice.
// The input slice is never mutated.
func Add(items []domain.CartItem, productID int64, qty int, currentPrice float64, currentStock int) ([]domain.CartItem, float64, error) {
	if qty < 1 {
		return nil, 0, domain.ErrInvalidQuantity
	}

	existing := 0
	for _, it := range items {
		if it.ProductID == productID {
			existing = it.Quantity
			break
		}
	}
	if existing+qty > currentStock {
		return nil, 0, domain.ErrOutOfStock
	}

	next := make([]domain.CartItem, len(items))
	copy(next, items)

	merged := false
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity += qty
			next[i].Price = currentPrice
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, domain.CartItem{
			ProductID: productID,
			Quantity:  qty,
			Price:     currentPrice,
			AddedAt:   time.Now(),
		})
	}

	return next, Total(next), nil
}

// UpdateQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line instead; removal of an absent line is a no-op, but
// updating an absent line to a positive quantity is an error.
//
// Stock is deliberately not re-checked here: the platform only guards stock at
// add time.
func UpdateQuantity(items []domain.CartItem, productID int64, qty int) ([]domain.CartItem, float64, error) {
	if qty <= 0 {
		next, total := Remove(items, productID)
		return next, total, nil
	}

	next := make([]domain.CartItem, len(items))
	copy(next, items)

	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = qty
			return next, Total(next), nil
		}
	}
	return nil, 0, domain.ErrItemNotFound
}

// Remove drops the line for productID if present. Removing an absent line
// yields the same list, so removal is idempotent.
func Remove(items []domain.CartItem, productID int64) ([]domain.CartItem, float64) {
	next := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			next = append(next, it)
		}
	}
	return next, Total(next)
}

// Clear empties the item list.
func Clear() ([]domain.CartItem, float64) {
	return []domain.CartItem{}, 0
}

// Total is the sum of price x quantity over all lines, rounded to the cent.
func Total(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return domain.RoundMoney(sum)
}
