// Package cart owns the cart aggregate: pure state transitions over
// the line item collection, and a Store that guards the current cart
// and notifies subscribers of changes.
package cart

import (
	"math"
	"strconv"

	"shopfront/internal/domain"
)

// The transition functions below are total: malformed input never
// errors, it yields a no-op. A no-op returns the SAME *Cart pointer;
// any real change returns a fresh Cart value. Subscribers (the
// persistence bridge) rely on that reference check to skip redundant
// writes.

// Add merges a product into the cart. Quantity is clamped to a minimum
// of 1; a product without a usable id is ignored. If a line item with
// the same normalized id exists, its quantity grows up to MaxQuantity
// and its unit price stays pinned at what was stored on first add — a
// later catalog price change never re-prices an in-cart item.
func Add(c *domain.Cart, p domain.Product, quantity int) *domain.Cart {
	if p.ID <= 0 {
		return c
	}
	if quantity < 1 {
		quantity = 1
	}

	id := NormalizeID(p.ID)
	var items []domain.LineItem
	if c != nil {
		items = c.Items
	}

	if i := findItem(items, id); i >= 0 {
		next := cloneItems(items)
		it := &next[i]
		it.Quantity = capQuantity(it.Quantity + quantity)
		it.Subtotal = domain.Round2(it.Price * float64(it.Quantity))
		return &domain.Cart{Items: next}
	}

	price := sanitizePrice(p.Price)
	q := capQuantity(quantity)
	item := domain.LineItem{
		ID:       id,
		Title:    p.Title,
		Price:    price,
		Image:    p.Image,
		Quantity: q,
		Subtotal: domain.Round2(price * float64(q)),
	}
	if item.Title == "" {
		item.Title = domain.DefaultTitle
	}
	if item.Image == "" {
		item.Image = domain.PlaceholderImage
	}
	return &domain.Cart{Items: append(cloneItems(items), item)}
}

// UpdateQuantity sets the exact quantity of the matching line item,
// capped at MaxQuantity. A quantity of zero or less removes the item.
// Missing id or unknown item is a no-op.
func UpdateQuantity(c *domain.Cart, id string, quantity int) *domain.Cart {
	if id == "" || c == nil {
		return c
	}
	if quantity <= 0 {
		return Remove(c, id)
	}
	i := findItem(c.Items, id)
	if i < 0 {
		return c
	}
	next := cloneItems(c.Items)
	it := &next[i]
	it.Quantity = capQuantity(quantity)
	it.Subtotal = domain.Round2(it.Price * float64(it.Quantity))
	return &domain.Cart{Items: next}
}

// Remove drops the line item with the matching normalized id; no-op if
// absent.
func Remove(c *domain.Cart, id string) *domain.Cart {
	if c == nil {
		return c
	}
	i := findItem(c.Items, id)
	if i < 0 {
		return c
	}
	next := make([]domain.LineItem, 0, len(c.Items)-1)
	next = append(next, c.Items[:i]...)
	next = append(next, c.Items[i+1:]...)
	return &domain.Cart{Items: next}
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func Clear(c *domain.Cart) *domain.Cart {
	if c.IsEmpty() {
		return c
	}
	return &domain.Cart{}
}

// NormalizeID renders a product id in its canonical string form, so
// that the numeric id on a catalog record and the string id in a route
// parameter address the same line item.
func NormalizeID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func findItem(items []domain.LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	next := make([]domain.LineItem, len(items))
	copy(next, items)
	return next
}

func capQuantity(q int) int {
	if q > domain.MaxQuantity {
		return domain.MaxQuantity
	}
	return q
}

// sanitizePrice coerces a unit price to a usable non-negative number;
// NaN, infinities and negatives become 0.
func sanitizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
