package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
)

// CatalogService is what the handlers need from the catalog cache.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalogSvc CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalogSvc,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		catalogRequests.WithLabelValues("error").Inc()
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to load products")
		return
	}

	catalogRequests.WithLabelValues("ok").Inc()
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			catalogRequests.WithLabelValues("not_found").Inc()
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		catalogRequests.WithLabelValues("error").Inc()
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to load product")
		return
	}

	catalogRequests.WithLabelValues("ok").Inc()
	respondJSON(w, http.StatusOK, product)
}
