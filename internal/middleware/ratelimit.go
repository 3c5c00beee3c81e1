package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/sakif/starwars-api/internal/handler"
)

// RateLimit sheds load with a single token bucket shared by all clients:
// rps tokens per second, up to burst at once. Requests over the limit get
// 429 {"msg": "too many requests"} and never reach the handler.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				handler.WriteMessage(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
