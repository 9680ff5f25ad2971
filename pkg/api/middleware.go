package api

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/graphsight/graphsight/pkg/logging"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestIDFromContext returns the request id assigned by the middleware,
// or the empty string outside a request scope.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// panicRecoveryMiddleware recovers from panics in HTTP handlers so a single
// bad request cannot take the server down.
func (s *Server) panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic in handler",
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.Any("panic", err),
					logging.String("stack", string(debug.Stack())))
				s.respondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware assigns every request a UUID, honoring an existing
// X-Request-ID header from upstream proxies.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", wrapper.statusCode),
			logging.RequestID(RequestIDFromContext(r.Context())),
			logging.Latency(time.Since(start)))
	})
}

// metricsMiddleware tracks HTTP request metrics
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		s.registry.HTTPRequestsInFlight.Inc()
		defer s.registry.HTTPRequestsInFlight.Dec()

		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		s.registry.RecordHTTPRequest(r.Method, r.URL.Path,
			strconv.Itoa(wrapper.statusCode), time.Since(start))
	})
}

// bodySizeLimitMiddleware rejects oversized uploads before the parser ever
// sees them. Chunked requests without Content-Length are capped by
// MaxBytesReader instead.
func (s *Server) bodySizeLimitMiddleware(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			if r.ContentLength > maxBytes {
				s.respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// statusResponseWriter wraps http.ResponseWriter to capture the status code
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
