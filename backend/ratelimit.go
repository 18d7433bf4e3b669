package backend

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var rateLimitedBody = []byte(`{"error":"rate limit exceeded, please try again later."}`)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter allows each client IP a burst of n requests refilled evenly over window
type ipRateLimiter struct {
	n         int
	window    time.Duration
	clients   map[string]*clientLimiter
	lastSweep time.Time
	lock      *sync.Mutex
	now       func() time.Time
}

func makeIPRateLimiter(n uint, window time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		n:         int(n),
		window:    window,
		clients:   map[string]*clientLimiter{},
		lastSweep: time.Now(),
		lock:      &sync.Mutex{},
		now:       time.Now,
	}
}

func (l *ipRateLimiter) allow(clientIP string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	now := l.now()
	// a client idle for a whole window has a full bucket again, so forgetting it changes nothing
	if now.Sub(l.lastSweep) > l.window {
		for ip, c := range l.clients {
			if now.Sub(c.lastSeen) > l.window {
				delete(l.clients, ip)
			}
		}
		l.lastSweep = now
	}

	c, exists := l.clients[clientIP]
	if !exists {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.n)), l.n),
		}
		l.clients[clientIP] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Handler answers 429 once the client IP has used up its budget. RemoteAddr is already rewritten by middleware.RealIP.
func (l *ipRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write(rateLimitedBody)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, e := net.SplitHostPort(r.RemoteAddr)
	if e != nil {
		return r.RemoteAddr
	}
	return host
}
