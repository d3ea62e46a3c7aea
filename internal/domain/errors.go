package domain

import "errors"

// Sentinel errors shared across the cart engine. Handlers branch on these with
// errors.Is and translate them to stable machine-checkable codes.
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")
	ErrProductInactive = errors.New("product is not available")
	ErrOutOfStock      = errors.New("insufficient stock for requested quantity")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrMissingShipping = errors.New("shipping info is incomplete")
	ErrMissingPayment  = errors.New("payment method is required")
)
