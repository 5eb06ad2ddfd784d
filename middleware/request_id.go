package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/internal/requestctx"
)

// RequestIDHeader is the response header carrying the correlation ID.
const RequestIDHeader = "X-Request-Id"

// RequestID generates a correlation ID per request, threads it through the
// request context, echoes it to the client, and emits one structured
// http_request line when the request completes.
//
// The access log has a fixed safe shape: method, path, status, latency.
// Bodies, query strings and auth headers are never logged here.
func RequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			ctx := requestctx.WithRequestID(r.Context(), requestID)
			w.Header().Set(RequestIDHeader, requestID)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000.0),
			)
		})
	}
}
