package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// isValidRequestID accepts printable ASCII (0x20-0x7E) up to maxRequestIDLength bytes,
// which keeps caller-supplied IDs safe to write into logs.
func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		if c := id[i]; c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// RequestID injects a request identifier into the context and response headers.
// A valid incoming X-Request-Id is reused; otherwise a UUIDv4 is generated.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(middleware.RequestIDHeader)
			if !isValidRequestID(reqID) {
				reqID = uuid.NewString()
			}
			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, reqID))
			w.Header().Set(middleware.RequestIDHeader, reqID)
			next.ServeHTTP(w, r)
		})
	}
}
