package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"devcloud/internal/httputil"
)

// maxRequestIDLength bounds client-supplied ids before they reach the logs
const maxRequestIDLength = 128

// RequestID tags each request with an id, reusing the client's
// X-Request-ID when it sends a usable one. The id is echoed in the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(httputil.RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}

			w.Header().Set(httputil.RequestIDHeader, id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
