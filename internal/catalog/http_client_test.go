package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/42", r.URL.Path)
		json.NewEncoder(w).Encode(Product{
			ID:     42,
			Name:   "campus hoodie",
			Price:  35.00,
			Stock:  12,
			Active: true,
		})
	}))
	defer srv.Close()

	sut := NewHTTPClient(srv.URL, time.Second)
	p, err := sut.Product(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, 35.00, p.Price)
	assert.Equal(t, 12, p.Stock)
	assert.True(t, p.Active)
}

func TestProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sut := NewHTTPClient(srv.URL, time.Second)
	_, err := sut.Product(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProduct_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sut := NewHTTPClient(srv.URL, time.Second)
	for i := 0; i < 10; i++ {
		_, err := sut.Product(context.Background(), 7)
		assert.ErrorIs(t, err, ErrNotFound, "breaker must stay closed on 404s")
	}
}

func TestProduct_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sut := NewHTTPClient(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		_, err := sut.Product(context.Background(), 1)
		require.Error(t, err)
	}

	before := calls.Load()
	_, err := sut.Product(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, before, calls.Load(), "open breaker must short-circuit the request")
}
