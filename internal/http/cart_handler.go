package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/domain"
)

type CartHandler struct {
	store   *cart.Store
	catalog CatalogService
	timeout time.Duration
}

func NewCartHandler(store *cart.Store, catalogSvc CatalogService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalogSvc,
		timeout: timeout,
	}
}

// Quantities arrive as JSON numbers and are floored to integers, so a
// fractional quantity degrades instead of erroring.
type AddItemRequestDTO struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity float64 `json:"quantity"`
}

type CartResponse struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
}

func newCartResponse(c *domain.Cart) *CartResponse {
	resp := &CartResponse{Items: []domain.LineItem{}, Total: c.Total()}
	if c != nil && c.Items != nil {
		resp.Items = c.Items
	}
	return resp
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newCartResponse(h.store.Cart()))
}

// AddItem resolves the product through the catalog cache and adds it
// to the cart, so the stored price is the catalog price at add time.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to resolve product")
		return
	}

	next := h.store.Add(*product, int(math.Floor(req.Quantity)))
	cartOperations.WithLabelValues("add").Inc()
	respondJSON(w, http.StatusCreated, newCartResponse(next))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	next := h.store.UpdateQuantity(id, int(math.Floor(req.Quantity)))
	cartOperations.WithLabelValues("update_quantity").Inc()
	respondJSON(w, http.StatusOK, newCartResponse(next))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	next := h.store.Remove(id)
	cartOperations.WithLabelValues("remove").Inc()
	respondJSON(w, http.StatusOK, newCartResponse(next))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	next := h.store.Clear()
	cartOperations.WithLabelValues("clear").Inc()
	respondJSON(w, http.StatusOK, newCartResponse(next))
}

// productIDParam parses the product_id route parameter into its
// normalized form, so "7" in a route and 7 on a catalog record address
// the same line item.
func productIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return "", false
	}
	return cart.NormalizeID(id), true
}
