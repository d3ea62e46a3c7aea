package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/orders"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/repository"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps engine errors to HTTP statuses and the stable
// machine codes UI layers branch on.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrMissingShipping):
		respondError(w, http.StatusBadRequest, "missing_shipping", err.Error())
	case errors.Is(err, domain.ErrMissingPayment):
		respondError(w, http.StatusBadRequest, "missing_payment", err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrProductInactive):
		respondError(w, http.StatusNotFound, "product_inactive", err.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, domain.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, repository.ErrStorageUnavailable):
		respondError(w, http.StatusServiceUnavailable, "storage_unavailable", "cart storage unavailable")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
