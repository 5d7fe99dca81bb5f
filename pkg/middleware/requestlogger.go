package middleware

import (
	"log/slog"
	"net/http"

	"github.com/salmankhalil12/Restaurant-Site/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation and trace IDs in
// the request context; handlers fetch it with logger.FromContext.
// Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
