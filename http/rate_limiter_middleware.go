package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// RealIP may already have stripped the port.
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			w.Header().Set("Retry-After", retryAfterSeconds(limiter))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds renders RetryAfter as whole seconds, at least one.
func retryAfterSeconds(limiter *RateLimiter) string {
	seconds := int(math.Ceil(limiter.RetryAfter().Seconds()))
	return strconv.Itoa(max(1, seconds))
}
