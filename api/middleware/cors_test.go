package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestAllowedOriginsIncludesFrontend(t *testing.T) {
	got := allowedOrigins(" https://stonefront.co.uk/ ,http://localhost:3000,")
	want := []string{"http://localhost:3000", "https://stonefront.co.uk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS("https://stonefront.co.uk")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/cart/add", nil)
	req.Header.Set("Origin", "https://stonefront.co.uk")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://stonefront.co.uk" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}
