package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kalender/internal/delivery/http/helpers"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu                sync.Mutex
	limiters          map[string]*clientLimiter
	requestsPerMinute int
	rate              rate.Limit
	burst             int
	trustedProxies    []netip.Prefix
	now               func() time.Time
}

// NewRateLimiter allows each client requestsPerMinute requests with the given
// burst. A non-positive rate disables limiting.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &RateLimiter{
		limiters:          make(map[string]*clientLimiter),
		requestsPerMinute: requestsPerMinute,
		rate:              limit,
		burst:             burst,
		now:               time.Now,
	}
}

// TrustProxies makes RateLimit key requests arriving from one of prefixes by
// the X-Forwarded-For client instead of the proxy address.
func (rl *RateLimiter) TrustProxies(prefixes []netip.Prefix) *RateLimiter {
	rl.trustedProxies = prefixes
	return rl
}

// Allow reports whether the client identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Cleanup drops limiters of clients not seen for idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for key, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// RateLimit rejects requests over the client's budget with 429 too_many_requests.
func RateLimit(rl *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(ClientIP(r, rl.trustedProxies)) {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.requestsPerMinute)))
			helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeTooManyRequests,
				fmt.Sprintf("too many requests, limit is %d per minute", rl.requestsPerMinute))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(requestsPerMinute int) int {
	if requestsPerMinute <= 0 {
		return 1
	}
	s := 60 / requestsPerMinute
	if s < 1 {
		return 1
	}
	return s
}

// ClientIP returns the host part of RemoteAddr. When the peer is a trusted
// proxy, it returns the nearest X-Forwarded-For hop that is not itself trusted.
func ClientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !isTrusted(host, trusted) {
		return host
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !isTrusted(hop, trusted) {
			return hop
		}
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
