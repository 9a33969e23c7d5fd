// Package middleware provides the HTTP middleware stack: request logging,
// panic recovery, CORS and per-IP rate limiting.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// window tracks request counts for one client IP in a fixed window.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter limits each client IP to max requests per window. A background
// goroutine evicts expired entries so memory stays bounded.
type Limiter struct {
	mu      sync.Mutex
	max     int
	span    time.Duration
	clients map[string]*window
}

// NewLimiter builds a limiter and starts its eviction loop.
func NewLimiter(max int, span time.Duration) *Limiter {
	l := &Limiter{
		max:     max,
		span:    span,
		clients: make(map[string]*window),
	}
	go l.evict()
	return l
}

func (l *Limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[ip]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.span)}
		l.clients[ip] = w
	}

	w.count++
	return w.count <= l.max
}

func (l *Limiter) evict() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware returns the rate-limiting middleware for this limiter.
func (l *Limiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !l.allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"message":"Too many requests."}`)) //nolint:errcheck
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit is a convenience wrapper: middleware.RateLimit(200, time.Minute).
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	return NewLimiter(max, span).Middleware()
}
