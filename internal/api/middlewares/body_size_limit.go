package middlewares

import (
	"net/http"
	"os"
	"strconv"

	"github.com/5w1tchy/blog-ui/internal/api/apperr"
)

// DefaultMaxBody covers form posts and a profile picture preview.
const DefaultMaxBody = int64(6 << 20)

// MaxBodyFromEnv reads MAX_BODY_SIZE in bytes.
func MaxBodyFromEnv() int64 {
	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxBody
}

// BodySizeLimit caps POST/PUT/PATCH bodies. A declared Content-Length over the
// limit is refused up front; chunked bodies fail on read.
func BodySizeLimit(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				if r.ContentLength > limit {
					apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "", "request body too large")
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
