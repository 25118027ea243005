package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/medibook/booking/pkg/logger"
)

// HTTPMiddleware records request metrics and an access log entry for every
// request. Metric endpoint labels use the mux route template so path
// parameters do not explode the label cardinality.
func HTTPMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapper := &statusResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					endpoint = template
				}
			}

			RecordHTTPRequest(r.Method, endpoint, strconv.Itoa(wrapper.statusCode), duration)
			log.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, wrapper.statusCode, duration.Milliseconds())
		})
	}
}

// statusResponseWriter wraps http.ResponseWriter to capture the status code
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
