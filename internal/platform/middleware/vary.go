package middleware

import "net/http"

// Vary adds the request headers that influence responses: Accept selects JSON or CBOR,
// Accept-Language selects the date format in rendered documents.
// The CORS middleware adds Origin on its own.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r)
		})
	}
}
