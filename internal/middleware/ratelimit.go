// Package middleware holds chi-compatible HTTP middleware applied outside
// the request pipelines.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// client tracks one remote address's token bucket and its last activity so
// idle entries can be evicted.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per remote IP. Entries idle for longer
// than idleTTL are dropped by a background sweep.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

func newIPLimiter(rps float64, burst int, idleTTL time.Duration) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

func (l *ipLimiter) sweep() {
	for range time.Tick(l.idleTTL) {
		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > l.idleTTL {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit limits requests per remote IP, answering 429 once a client's
// bucket is exhausted. rps is the sustained rate, burst the bucket size;
// clients idle for longer than idleTTL are forgotten.
func RateLimit(rps float64, burst int, idleTTL time.Duration) func(http.Handler) http.Handler {
	limiter := newIPLimiter(rps, burst, idleTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
