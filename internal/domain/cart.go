package domain

import (
	"math"
	"time"
)

// Cart is the per-user aggregate of line items awaiting purchase. One cart per
// user; created lazily on first read or first add, cleared in place on checkout.
type Cart struct {
	ID          string     `bson:"_id,omitempty" json:"-"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalAmount float64    `bson:"total_amount" json:"total_amount"`
	// Version guards read-modify-write cycles against the cart store.
	// Incremented on every successful replace.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartItem is one (product, quantity, price snapshot) line. At most one line
// per product; quantity is always >= 1 (a line at zero is removed, not stored).
type CartItem struct {
	ProductID int64 `bson:"product_id" json:"product_id"`
	Quantity  int   `bson:"quantity" json:"quantity"`
	// Price is the unit price captured at the moment the line was added or
	// last re-added, decoupled from later catalog price changes.
	Price   float64   `bson:"price" json:"price"`
	AddedAt time.Time `bson:"added_at" json:"added_at"`
}

// Subtotal returns price x quantity for the line, rounded to the cent.
func (i CartItem) Subtotal() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}

// RoundMoney rounds a monetary amount to two decimals, half up.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
