// Package checkout turns the current cart into a locally-generated
// order. There is no payment processing and no order backend; the
// order exists so the customer gets a receipt and the cart empties.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/cart"
	"shopfront/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// Loose on purpose: the form should reject obvious junk, not referee
// RFC 5322.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

type PlaceOrderRequest struct {
	Name    string
	Email   string
	Address string
}

type Service struct {
	cart *cart.Store
	log  *slog.Logger
}

func NewService(cartStore *cart.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cart: cartStore, log: log}
}

// PlaceOrder validates the shipping details, snapshots the cart into
// an order and clears the cart. Returns FieldErrors for invalid input
// and ErrEmptyCart when there is nothing to order.
func (s *Service) PlaceOrder(_ context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	if errs := validate(req); len(errs) > 0 {
		return nil, errs
	}

	snapshot := s.cart.Cart()
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:        newOrderID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Items:     snapshot.Items,
		Total:     snapshot.Total(),
		CreatedAt: time.Now(),
	}

	s.cart.Clear()
	s.log.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.Total)
	return order, nil
}

func validate(req PlaceOrderRequest) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Enter a valid email"
	}
	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "Address is required"
	}
	return errs
}

// newOrderID derives a short human-readable order id from a UUID.
func newOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:6])
}
