package domain

import "math"

const (
	// MaxQuantity bounds a single line item. The quantity selector in
	// the UI is finite and repeated taps must not grow a line without
	// limit.
	MaxQuantity = 99

	DefaultTitle     = "Untitled product"
	PlaceholderImage = "/placeholder-200.png"
)

// LineItem is one product's presence in the cart. ID is the normalized
// (string) form of the product id. Subtotal is derived; it is
// recomputed on every mutation and never set independently.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Cart is an ordered collection of line items, unique by normalized id.
// Values are treated as immutable once published; mutations go through
// the cart engine which copies on write.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Total is the grand total over all line subtotals.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var sum float64
	for _, it := range c.Items {
		sum += it.Subtotal
	}
	return Round2(sum)
}

// Round2 rounds to two decimal places, the precision all cart money
// values are kept at.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}
