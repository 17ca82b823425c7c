package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies permissive defaults for the JSON API. Content-Disposition is exposed
// so browser clients can read the suggested download filename.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Accept-Language",
			"Content-Type",
			"X-Time-Zone",
		},
		ExposedHeaders: []string{"Content-Disposition", "Location", "X-Request-Id"},
		MaxAge:         300,
	})
}
