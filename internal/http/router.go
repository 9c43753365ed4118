package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopfront/internal/cart"
)

// NewRouter assembles the storefront API.
func NewRouter(
	store *cart.Store,
	catalogSvc CatalogService,
	checkoutSvc OrderPlacer,
	requestTimeout time.Duration,
) http.Handler {
	productHandler := NewProductHandler(catalogSvc, requestTimeout)
	cartHandler := NewCartHandler(store, catalogSvc, requestTimeout)
	checkoutHandler := NewCheckoutHandler(checkoutSvc, requestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.PlaceOrder)
	})

	return r
}
