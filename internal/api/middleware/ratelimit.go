package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"crm-admin/internal/config"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterIdleAfter       = 30 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware keeps one token bucket per client IP.
type RateLimiterMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      config.RateLimitConfig
	scope    string
	now      func() time.Time
	logger   *slog.Logger
}

// NewRateLimiterMiddleware starts a janitor that drops idle buckets until ctx is done.
func NewRateLimiterMiddleware(ctx context.Context, scope string, cfg config.RateLimitConfig, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
		scope:    scope,
		now:      time.Now,
		logger:   logger.With("component", "RateLimiter", "scope", scope),
	}

	if cfg.Enabled {
		go rl.cleanupLimiters(ctx)
	}

	return rl
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

func (rl *RateLimiterMiddleware) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiterMiddleware) evictIdle() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdleAfter)
	evicted := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			evicted++
		}
	}
	return evicted
}

// extractIP keys buckets on the connection address. Forwarded headers are
// folded into RemoteAddr by RealIP only when the server trusts its proxy.
func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		limiter := rl.getLimiter(ip)

		if !limiter.Allow() {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
