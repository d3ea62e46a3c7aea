package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/checkout"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID string, shipping domain.ShippingInfo, paymentMethod string) (*checkout.Receipt, error)
}

type OrderReader interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
}

type CheckoutHandler struct {
	service CheckoutService
	orders  OrderReader
}

func NewCheckoutHandler(service CheckoutService, orders OrderReader) *CheckoutHandler {
	return &CheckoutHandler{service: service, orders: orders}
}

type CheckoutRequestDTO struct {
	Shipping      domain.ShippingInfo `json:"shipping"`
	PaymentMethod string              `json:"payment_method"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	receipt, err := h.service.Checkout(r.Context(), userID, req.Shipping, req.PaymentMethod)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// GET /api/v1/orders/{order_id}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	orderID := chi.URLParam(r, "order_id")

	order, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if order.UserID != userID {
		// someone else's order is indistinguishable from a missing one
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	list, err := h.orders.ListOrdersByUserID(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, list)
}
