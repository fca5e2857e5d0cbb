package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RateLimitMiddleware charges each request against the client's bucket in
// scope and rejects it with 429 and a Retry-After in whole seconds once the
// bucket is empty.
func RateLimitMiddleware(limiter *RateLimiter, scope Scope, logger *slog.Logger) func(http.Handler) http.Handler {
	rs := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := limiter.Allow(scope, clientIP(r))
			if !ok {
				w.Header().Set("Retry-After", retryAfterSeconds(wait))
				rs.logger.Debug("rate limited", "scope", scope, "client", clientIP(r))
				rs.writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(wait time.Duration) string {
	return strconv.Itoa(max(1, int(math.Ceil(wait.Seconds()))))
}
