package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupRoutesAndMiddlewareOrder(t *testing.T) {
	r := New()
	api := r.Group("/api/", tag("api"))
	orders := api.Group("orders", tag("auth"))

	orders.Get("/{id}", "orders.show", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}, tag("route"))
	orders.Delete("/{id}", "orders.destroy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, []string{"api", "auth", "route"}, rec.Header().Values("X-Chain"))

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/orders/abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRoutesAreListedSorted(t *testing.T) {
	r := New()
	g := r.Group("/api/payments")
	noop := func(http.ResponseWriter, *http.Request) {}
	g.Put("/{id}", "payments.update", noop)
	g.Post("/", "payments.store", noop)
	g.Get("/", "payments.index", noop)
	r.Get("/health", "", noop)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/api/payments", Name: "payments.index"},
		{Method: http.MethodPost, Path: "/api/payments", Name: "payments.store"},
		{Method: http.MethodPut, Path: "/api/payments/{id}", Name: "payments.update"},
		{Method: http.MethodGet, Path: "/health"},
	}, r.Routes())
}

func TestURL(t *testing.T) {
	r := New()
	r.Group("/api/orders").Get("/{id}", "orders.show", func(http.ResponseWriter, *http.Request) {})

	u, err := r.URL("orders.show", map[string]string{"id": "65f0"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/65f0", u)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}
