package kernel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/pkg/auth"
	"github.com/shashiranjanraj/boutique/pkg/response"
)

func serve(t *testing.T, k *HTTPKernel, req *http.Request) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	k.Handler().ServeHTTP(rec, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func newKernel(t *testing.T) *HTTPKernel {
	k := NewHTTPKernel(Deps{})
	t.Cleanup(k.Close)
	return k
}

func TestHealthReportsMongoDown(t *testing.T) {
	k := newKernel(t)

	rec, env := serve(t, k, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "down", data["mongo"])
	assert.Equal(t, "disabled", data["redis"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	k := newKernel(t)

	rec, env := serve(t, k, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", env.Message)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCustomerSummaryRequiresQuery(t *testing.T) {
	k := newKernel(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), "owner@boutique.test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/customer-summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, env := serve(t, k, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide customer name or contact", env.Message)
}

func TestUnknownRoute(t *testing.T) {
	k := newKernel(t)

	rec, env := serve(t, k, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestRouteTableMatchesKernel(t *testing.T) {
	k := newKernel(t)

	assert.Equal(t, k.Routes(), RouteTable())

	names := map[string]bool{}
	for _, ri := range RouteTable() {
		names[ri.Name] = true
	}
	for _, want := range []string{"auth.login", "auth.refresh", "orders.store", "orders.drift", "payments.customer_summary", "reports.financial_summary", "metrics", "health"} {
		assert.True(t, names[want], want)
	}
}
