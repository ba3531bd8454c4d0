package reqid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(seen) != 32 || rec.Header().Get(Header) != seen {
		t.Errorf("expected generated 32-char id echoed in header, got %q / %q", seen, rec.Header().Get(Header))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "gateway-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "gateway-42" {
		t.Errorf("expected upstream id to be kept, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "bad id\nwith newline"+strings.Repeat("x", 80))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == req.Header.Get(Header) || len(seen) != 32 {
		t.Errorf("expected malformed upstream id to be replaced, got %q", seen)
	}
}
