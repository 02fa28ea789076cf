package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPPrefersForwardedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/enquiries", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	if got := ClientIP(req); got != "10.0.0.9" {
		t.Fatalf("expected remote host, got %q", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.4")
	if got := ClientIP(req); got != "203.0.113.4" {
		t.Fatalf("expected real ip, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", " 198.51.100.7 , 10.0.0.1")
	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected first forwarded ip, got %q", got)
	}
}

func TestWriteThrottleBlocksBurstsPerIP(t *testing.T) {
	throttle := NewWriteThrottle(1, 2)
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	throttle.now = func() time.Time { return frozen }

	handler := throttle.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(method, ip string) int {
		req := httptest.NewRequest(method, "/api/cart/add", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(http.MethodPost, "192.0.2.1"); code != http.StatusCreated {
			t.Fatalf("write %d: expected 201 got %d", i, code)
		}
	}
	if code := send(http.MethodPost, "192.0.2.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once burst spent, got %d", code)
	}
	if code := send(http.MethodGet, "192.0.2.1"); code != http.StatusCreated {
		t.Fatalf("reads must pass, got %d", code)
	}
	if code := send(http.MethodPost, "192.0.2.2"); code != http.StatusCreated {
		t.Fatalf("other ip must pass, got %d", code)
	}

	frozen = frozen.Add(2 * time.Second)
	if code := send(http.MethodPost, "192.0.2.1"); code != http.StatusCreated {
		t.Fatalf("expected refill after wait, got %d", code)
	}
}

func TestNilWriteThrottlePassesThrough(t *testing.T) {
	throttle := NewWriteThrottle(0, 10)
	handler := throttle.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
