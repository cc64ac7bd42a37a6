package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/mindjournal-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// HostCheck returns 403 when r.Host does not match allowedHost (e.g. api.mindjournal.app).
// allowedHost should be the bare hostname without scheme or port.
func HostCheck(allowedHost string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedHost == "" {
				next.ServeHTTP(w, r)
				return
			}
			reqHost := r.Host
			if host, _, err := net.SplitHostPort(reqHost); err == nil {
				reqHost = host
			}
			if !strings.EqualFold(strings.TrimSpace(reqHost), strings.TrimSpace(allowedHost)) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const (
	globalRateLimitRPS   = 1
	globalRateLimitBurst = 10
	limiterSweepInterval = 5 * time.Minute
	limiterTTL           = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Idle buckets are swept
// on access, so no background goroutine is needed.
type IPRateLimiter struct {
	limit    rate.Limit
	burst    int
	resolver clientip.Resolver

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(limit rate.Limit, burst int, resolver clientip.Resolver) *IPRateLimiter {
	return &IPRateLimiter{
		limit:    limit,
		burst:    burst,
		resolver: resolver,
		entries:  make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for key, e := range l.entries {
			if now.Sub(e.lastUse) > limiterTTL {
				delete(l.entries, key)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter
}

// Middleware returns 429 once a client IP exhausts its bucket.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.resolver.ClientIP(r)
		if !l.limiterFor(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → HostCheck → per-IP rate limit.
func ProductionSecurity(allowedHost string, resolver clientip.Resolver) []func(http.Handler) http.Handler {
	limiter := NewIPRateLimiter(rate.Limit(globalRateLimitRPS), globalRateLimitBurst, resolver)
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		HostCheck(allowedHost),
		limiter.Middleware,
	}
}
