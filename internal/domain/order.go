package domain

import "time"

// Order captures the cart state at checkout time. Orders are generated
// locally and not persisted anywhere; the id is the customer's receipt.
type Order struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}
