package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

// Fetcher is what the cache needs from the catalog API.
// Consumers define this interface, not the HTTP client.
type Fetcher interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

// Service fronts the catalog with two caches. The listing is kept in
// memory and served stale if a refresh fails. Product details are a
// read-through, write-once-per-id cache in the durable store: cached
// records never expire and are never invalidated, which is acceptable
// for a catalog that changes rarely within a session.
type Service struct {
	client Fetcher
	store  *kv.Adapter
	log    *slog.Logger
	sfg    singleflight.Group // Prevents duplicate fetches for same product

	mu      sync.RWMutex
	listing []domain.Product
}

func NewService(client Fetcher, store *kv.Adapter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, store: store, log: log}
}

// Products returns the catalog listing, refreshing it from upstream.
// When the refresh fails and a previous listing exists, the stale
// listing is served and the failure logged; with nothing to show, the
// error is returned so the view can surface it.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.client.List(ctx)
	if err != nil {
		s.mu.RLock()
		cached := s.listing
		s.mu.RUnlock()
		if cached != nil {
			s.log.Warn("catalog: list refresh failed, serving cached listing", "error", err)
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	s.mu.Lock()
	s.listing = products
	s.mu.Unlock()
	return products, nil
}

// Product returns one product record, from the detail cache when
// present. On a miss the record is fetched and cached; a failed fetch
// caches nothing.
func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKey(id)

	// Use singleflight so concurrent misses for the same id fetch once
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		var cached domain.Product
		if s.store.Load(ctx, key, &cached) && cached.ID != 0 {
			return &cached, nil
		}

		product, err := s.client.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		s.store.Save(ctx, key, product)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// productKey is deliberately not namespaced or versioned like the cart
// key; it matches the key scheme this cache has always written.
func productKey(id int64) string {
	return fmt.Sprintf("product_%d", id)
}
