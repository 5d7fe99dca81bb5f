package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// CacheControl marks GET and HEAD responses as publicly cacheable for maxAge.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
	return cacheHeader(value, true)
}

// NoStore forbids caching of every response, for state that changes per request.
func NoStore(next http.Handler) http.Handler {
	return cacheHeader("no-store", false)(next)
}

func cacheHeader(value string, readsOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !readsOnly || r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
