package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shopfront/internal/checkout"
	"shopfront/internal/domain"
)

// OrderPlacer is what the handler needs from the checkout service.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req checkout.PlaceOrderRequest) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout OrderPlacer
	timeout  time.Duration
}

func NewCheckoutHandler(svc OrderPlacer, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceOrder(ctx, checkout.PlaceOrderRequest{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		var fieldErrs checkout.FieldErrors
		if errors.As(err, &fieldErrs) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  "invalid order details",
				Code:   "validation_failed",
				Fields: fieldErrs,
			})
			return
		}
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}

	ordersPlaced.Inc()
	respondJSON(w, http.StatusCreated, order)
}
