package checkout

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/cart"
	"shopfront/internal/domain"
)

var orderIDPattern = regexp.MustCompile(`^ORD-[0-9A-F]{6}$`)

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Address: "12 Analytical Way",
	}
}

func seededStore(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(nil)
	s.Add(domain.Product{ID: 1, Title: "Shirt", Price: 19.99}, 2)
	s.Add(domain.Product{ID: 2, Title: "Hat", Price: 9.50}, 1)
	return s
}

func TestPlaceOrder_Success(t *testing.T) {
	store := seededStore(t)
	svc := NewService(store, nil)

	order, err := svc.PlaceOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, order.ID)
	assert.Equal(t, "Ada Lovelace", order.Name)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 49.48, order.Total)
	assert.False(t, order.CreatedAt.IsZero())

	assert.True(t, store.Cart().IsEmpty(), "placing an order clears the cart")
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlaceOrderRequest)
		field   string
		message string
	}{
		{"missing name", func(r *PlaceOrderRequest) { r.Name = "  " }, "name", "Name is required"},
		{"missing email", func(r *PlaceOrderRequest) { r.Email = "" }, "email", "Email is required"},
		{"bad email", func(r *PlaceOrderRequest) { r.Email = "not-an-email" }, "email", "Enter a valid email"},
		{"missing address", func(r *PlaceOrderRequest) { r.Address = "" }, "address", "Address is required"},
	}

	store := seededStore(t)
	svc := NewService(store, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.message, fieldErrs[tt.field])
		})
	}

	assert.False(t, store.Cart().IsEmpty(), "a rejected order must not touch the cart")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc := NewService(cart.NewStore(nil), nil)

	_, err := svc.PlaceOrder(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newOrderID()
		assert.Regexp(t, orderIDPattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 95, "ids should essentially never collide")
}
