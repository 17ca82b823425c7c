package logging

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger enriches the request context with a zap logger carrying trace and request IDs.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(traceparentHeader)
			projectID := resolveProjectID()
			reqID := chimiddleware.GetReqID(r.Context())

			traceID := traceResource(header, projectID)
			if traceID == "" && reqID != "" {
				traceID = reqID
			}
			logger := loggerWithTrace(Logger(), header, projectID, reqID)
			ctx := contextWithTraceID(r.Context(), traceID)
			ctx = WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLogger writes one structured summary line per request. Document downloads
// also record the served content type and suggested filename, and server errors
// are logged at warning level.
func AccessLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}
			if ct := ww.Header().Get("Content-Type"); ct != "" {
				fields = append(fields, zap.String("contentType", ct))
			}
			if cd := ww.Header().Get("Content-Disposition"); cd != "" {
				fields = append(fields, zap.String("contentDisposition", cd))
			}

			logger := LoggerFromContext(r.Context())
			if status >= http.StatusInternalServerError {
				logger.Warn("request completed", fields...)
				return
			}
			logger.Info("request completed", fields...)
		})
	}
}
