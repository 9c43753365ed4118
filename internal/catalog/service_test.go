package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type fetcherMock struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	listed   int
	fetched  int
}

func (f *fetcherMock) List(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fetcherMock) Get(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fetcherMock) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func newService(products ...domain.Product) (*Service, *fetcherMock, *kv.Adapter) {
	fetcher := &fetcherMock{products: products}
	adapter := kv.NewAdapter(kv.NewMemoryBackend(), nil)
	return NewService(fetcher, adapter, nil), fetcher, adapter
}

func TestProducts_FetchesAndCachesListing(t *testing.T) {
	svc, fetcher, _ := newService(domain.Product{ID: 1, Title: "Shirt"})
	ctx := context.Background()

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Upstream goes down: the last-fetched listing is served.
	fetcher.fail(errors.New("connection refused"))
	products, err = svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", products[0].Title)
	assert.Equal(t, 2, fetcher.listed)
}

func TestProducts_ErrorWithNothingCached(t *testing.T) {
	svc, fetcher, _ := newService()
	fetcher.fail(errors.New("connection refused"))

	_, err := svc.Products(context.Background())
	assert.Error(t, err)
}

func TestProduct_ReadThroughCache(t *testing.T) {
	svc, fetcher, _ := newService(domain.Product{ID: 7, Title: "Mug", Price: 4.20})
	ctx := context.Background()

	p, err := svc.Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Title)
	assert.Equal(t, 1, fetcher.fetched)

	// Second read is served from the cache without a network call,
	// even after the upstream goes away.
	fetcher.fail(errors.New("connection refused"))
	p, err = svc.Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Title)
	assert.Equal(t, 1, fetcher.fetched)
}

func TestProduct_CacheSharedAcrossServices(t *testing.T) {
	fetcher := &fetcherMock{products: []domain.Product{{ID: 7, Title: "Mug"}}}
	adapter := kv.NewAdapter(kv.NewMemoryBackend(), nil)
	ctx := context.Background()

	_, err := NewService(fetcher, adapter, nil).Product(ctx, 7)
	require.NoError(t, err)

	// A fresh service over the same durable store hits the cache.
	p, err := NewService(fetcher, adapter, nil).Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Title)
	assert.Equal(t, 1, fetcher.fetched)
}

func TestProduct_FailedFetchCachesNothing(t *testing.T) {
	svc, fetcher, _ := newService(domain.Product{ID: 7, Title: "Mug"})
	ctx := context.Background()

	fetcher.fail(errors.New("connection refused"))
	_, err := svc.Product(ctx, 7)
	require.Error(t, err)

	// Upstream recovers: the record is fetched, not served from a
	// poisoned cache entry.
	fetcher.fail(nil)
	p, err := svc.Product(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Title)
	assert.Equal(t, 2, fetcher.fetched)
}

func TestProduct_UnknownID(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Product(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
