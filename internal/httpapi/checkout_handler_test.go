package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/checkout"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(CheckoutRequestDTO{
		Shipping: domain.ShippingInfo{
			Name:    "Amina Rahman",
			Address: "Hall 4, Room 212",
			City:    "Dhaka",
			Phone:   "01700000000",
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	return body
}

func TestCheckout_Created(t *testing.T) {
	co := &mockCheckoutService{receipt: &checkout.Receipt{OrderID: "ord-abc", Total: 75.00}}

	rec := serve(t, &mockCartService{}, co, nil, authedRequest(http.MethodPost, "/api/v1/checkout", checkoutBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var receipt checkout.Receipt
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&receipt))
	assert.Equal(t, "ord-abc", receipt.OrderID)
	assert.Equal(t, 75.00, receipt.Total)
}

func TestCheckout_EmptyCart(t *testing.T) {
	co := &mockCheckoutService{err: domain.ErrEmptyCart}

	rec := serve(t, &mockCartService{}, co, nil, authedRequest(http.MethodPost, "/api/v1/checkout", checkoutBody(t)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "empty_cart", decodeError(t, rec).Code)
}

func TestCheckout_MissingShipping(t *testing.T) {
	co := &mockCheckoutService{err: domain.ErrMissingShipping}

	rec := serve(t, &mockCartService{}, co, nil, authedRequest(http.MethodPost, "/api/v1/checkout", checkoutBody(t)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_shipping", decodeError(t, rec).Code)
}

func TestCheckout_InvalidJSON(t *testing.T) {
	rec := serve(t, &mockCartService{}, &mockCheckoutService{}, nil, authedRequest(http.MethodPost, "/api/v1/checkout", []byte("{")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)
}

func TestGetOrder_OK(t *testing.T) {
	or := &mockOrderReader{order: &domain.Order{ID: "ord-abc", UserID: "123", TotalAmount: 75.00}}

	rec := serve(t, &mockCartService{}, nil, or, authedRequest(http.MethodGet, "/api/v1/orders/ord-abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var order domain.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, "ord-abc", order.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	or := &mockOrderReader{err: orders.ErrOrderNotFound}

	rec := serve(t, &mockCartService{}, nil, or, authedRequest(http.MethodGet, "/api/v1/orders/ord-missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", decodeError(t, rec).Code)
}

func TestGetOrder_OtherUsersOrderHidden(t *testing.T) {
	or := &mockOrderReader{order: &domain.Order{ID: "ord-abc", UserID: "456"}}

	rec := serve(t, &mockCartService{}, nil, or, authedRequest(http.MethodGet, "/api/v1/orders/ord-abc", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", decodeError(t, rec).Code)
}

func TestListOrders_EmptyListNotNull(t *testing.T) {
	rec := serve(t, &mockCartService{}, nil, &mockOrderReader{}, authedRequest(http.MethodGet, "/api/v1/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
