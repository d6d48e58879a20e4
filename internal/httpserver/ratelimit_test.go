package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginLimiterBurstThenDeny(t *testing.T) {
	l := newLoginLimiter()
	defer l.Stop()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := l.middleware(ok)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded: status = %d, want 429", code)
	}

	// A different client address has its own budget.
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client: status = %d, want 200", code)
	}
}
