package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows cross-origin GET from any origin. Browsers may send the
// request ID and trace context headers and read X-Request-Id back.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", "traceparent"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
