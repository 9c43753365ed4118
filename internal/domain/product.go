package domain

// Product is a record from the remote catalog. The storefront never
// mutates it; prices and titles are copied into cart line items at
// add time.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
