package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/babysteps/babysteps/internal/log"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := newIPLimiter(1.0, 5)

	for i := range 5 {
		assert.True(t, rl.allow("1.2.3.4"), "request %d should be within burst", i+1)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := newIPLimiter(1.0, 3)

	for range 3 {
		rl.allow("1.2.3.4")
	}

	assert.False(t, rl.allow("1.2.3.4"))
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	rl := newIPLimiter(1.0, 2)

	rl.allow("1.1.1.1")
	rl.allow("1.1.1.1")

	assert.True(t, rl.allow("2.2.2.2"), "a different IP has its own bucket")
}

func TestRateLimiter_SweepDropsStaleBuckets(t *testing.T) {
	rl := newIPLimiter(1.0, 1)
	assert.True(t, rl.allow("1.2.3.4"))
	assert.False(t, rl.allow("1.2.3.4"), "bucket exhausted")

	// Age the bucket past the stale threshold and force the next allow
	// to sweep; the IP then starts over with a full bucket.
	rl.mu.Lock()
	rl.buckets["1.2.3.4"].lastSeen = time.Now().Add(-staleAfter - time.Minute)
	rl.lastSweep = time.Now().Add(-sweepEvery - time.Minute)
	rl.mu.Unlock()

	assert.True(t, rl.allow("1.2.3.4"))
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := newIPLimiter(0.001, 1)
	handler := rateLimitMiddleware(rl, false, log.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/babies", nil)
	r.RemoteAddr = "10.0.0.1:5000"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limited", decodeErrorEnvelope(t, w).Error)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.1:54321",
			want:       "192.0.2.1",
		},
		{
			name:       "proxy headers ignored when untrusted",
			remoteAddr: "192.0.2.1:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "192.0.2.1",
		},
		{
			name:       "x-real-ip wins when trusted",
			remoteAddr: "192.0.2.1:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for first hop",
			remoteAddr: "192.0.2.1:54321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 198.51.100.2"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "garbage header falls back to remote addr",
			remoteAddr: "192.0.2.1:54321",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			trustProxy: true,
			want:       "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientIP(r, tt.trustProxy))
		})
	}
}
