package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// IngestKeyMiddleware returns a middleware that guards the ingest endpoint
// with a shared key carried in the X-Ingest-Key header. An empty configured
// key disables the check.
func IngestKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Ingest-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.Log.Warnw("ingest request rejected", "remote", r.RemoteAddr)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
