package domain

import "time"

// DefaultCurrency is the only currency the marketplace trades in.
const DefaultCurrency = "BDT"

type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// Complete reports whether every required shipping field is present.
func (s ShippingInfo) Complete() bool {
	return s.Name != "" && s.Address != "" && s.City != "" && s.Phone != ""
}

// OrderItem is the frozen copy of a cart line at checkout time.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is the durable snapshot minted by checkout. It outlives the cart it
// came from so the purchase stays auditable after the cart is cleared.
type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Items         []OrderItem  `json:"items"`
	TotalAmount   float64      `json:"total_amount"`
	Currency      string       `json:"currency"`
	Shipping      ShippingInfo `json:"shipping"`
	PaymentMethod string       `json:"payment_method"`
	Status        OrderStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
