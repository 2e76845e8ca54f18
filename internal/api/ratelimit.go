package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// sweepEvery bounds how often stale buckets are collected; sweeps run
	// inline on allow, so an idle server holds its map until traffic returns.
	sweepEvery = 5 * time.Minute

	// staleAfter is how long an IP may stay quiet before its bucket is dropped.
	staleAfter = 10 * time.Minute
)

// bucket pairs a token bucket with the last time its IP was seen.
type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP. All buckets share the
// same refill rate and burst; new IPs start with a full bucket.
type ipLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSec    rate.Limit
	burst     int
	lastSweep time.Time
}

func newIPLimiter(perSec float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets:   make(map[string]*bucket),
		perSec:    rate.Limit(perSec),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// allow reports whether ip has a token left, consuming one if so.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > sweepEvery {
		l.sweep(now)
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.perSec, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.lim.Allow()
}

// sweep drops buckets for IPs not seen within staleAfter. Callers hold mu.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > staleAfter {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}

// rateLimitMiddleware rejects requests with 429 once an IP runs out of
// tokens. trustProxy controls whether proxy headers may name the client.
func rateLimitMiddleware(l *ipLimiter, trustProxy bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustProxy)
			if !l.allow(ip) {
				logger.Warn("rate limit exceeded", "ip", ip, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the address a request should be limited under.
//
// Behind a trusted reverse proxy, X-Real-IP wins, then the first hop of
// X-Forwarded-For. Both are parsed with net.ParseIP so arbitrary header
// strings cannot mint fresh buckets. Without trustProxy only RemoteAddr
// counts, since either header is client-forgeable on a direct connection.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				return ip.String()
			}
		}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := xff
			if head, _, ok := strings.Cut(xff, ","); ok {
				first = head
			}
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
