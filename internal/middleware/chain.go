package middleware

import "net/http"

// Chain wraps h so that middlewares run in the order given:
//
//	Chain(mux, RequestLogging, AuthMiddleware(...))
//
// logs first, then authenticates.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Protected requires an authenticated user and, when limiter is set, applies
// the per-user rate limit after authentication.
func Protected(limiter *RateLimiter, h http.HandlerFunc) http.HandlerFunc {
	if limiter != nil {
		h = limiter.RateLimit(h)
	}
	return RequireAuth(h)
}
