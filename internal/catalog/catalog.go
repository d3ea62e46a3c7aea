package catalog

import (
	"context"
	"errors"
)

// Product is the cart engine's read-only view of a catalog entry.
type Product struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Active bool    `json:"is_active"`
}

// Lookup resolves current price, stock and availability for a product. The
// catalog service owns product lifecycle; the cart engine only reads.
type Lookup interface {
	Product(ctx context.Context, productID int64) (*Product, error)
}

var ErrNotFound = errors.New("product not found in catalog")
