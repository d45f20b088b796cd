// Package bodylimit provides a HTTP middleware that limits the maximum body size of requests
package bodylimit

import "net/http"

// BodyLimit returns a middleware that caps request bodies at n bytes.
// A non-positive n disables the limit.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
