package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"devcloud/internal/httputil"
	"devcloud/internal/metrics"
)

// Recovery turns a handler panic into a 500 problem carrying the request id,
// so a user report can be matched to the logged stack. http.ErrAbortHandler
// is re-raised to keep its abort semantics.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				pattern := r.Pattern
				if pattern == "" {
					pattern = "unmatched"
				}
				requestID := httputil.GetRequestID(r)
				metrics.RecordPanic(pattern)
				logger.Error("handler panicked",
					"panic", rec,
					"pattern", pattern,
					"method", r.Method,
					"request_id", requestID,
					"stack", string(debug.Stack()),
				)

				var extras map[string]interface{}
				if requestID != "" {
					extras = map[string]interface{}{"request_id": requestID}
				}
				httputil.RespondErrorWithExtras(w, http.StatusInternalServerError,
					"the dashboard hit an unexpected error", extras)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
