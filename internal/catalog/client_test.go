package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Shirt","price":19.99},{"id":2,"title":"Hat","price":9.5}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	products, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, 19.99, products[0].Price)
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"title":"Mug","price":4.2,"rating":{"rate":4.5,"count":120}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	p, err := client.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Title)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 4.5, p.Rating.Rate)
}

func TestClient_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// The upstream answers some unknown ids with 200 and a null body.
func TestClient_GetNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.List(context.Background())
	assert.Error(t, err)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.List(ctx)
		require.Error(t, err)
	}

	// The breaker is now open; requests fail fast without reaching
	// the upstream.
	_, err := client.List(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, hits)
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := client.Get(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}
