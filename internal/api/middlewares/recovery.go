package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/blog-ui/internal/api/apperr"
)

// Recovery turns a handler panic into a 500 problem response. The stack goes
// to the log only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			rid := GetRequestID(r)
			if rid == "" {
				rid = "unknown"
			}
			log.Printf("[PANIC] rid=%s visitor=%s %s %s: %v\n%s",
				rid, GetVisitorID(r), r.Method, r.URL.Path, v, debug.Stack())

			apperr.Write(w, r, apperr.Problem{Status: http.StatusInternalServerError})
		}()
		next.ServeHTTP(w, r)
	})
}
