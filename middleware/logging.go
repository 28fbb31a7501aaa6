package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/journal/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip logging for specific requests,
	// typically health checks.
	Skip func(r *http.Request) bool
	// SlowRequestThreshold promotes slow requests to warn level (default 5s).
	SlowRequestThreshold time.Duration
}

// Logging emits one entry per completed request carrying the method, path,
// status, response size and latency. Correlation fields ride in from the
// request context automatically.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(log, LoggingConfig{})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration.
func LoggingWithConfig(log *logger.Logger, cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	log = log.Child(logger.Component("http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			tm := log.StartTimer()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			elapsed := tm.Elapsed()
			attrs := []slog.Attr{
				logger.StatusCode(wrapped.statusCode),
				slog.Int("bytes_out", wrapped.size),
			}

			ctx := r.Context()
			switch {
			case wrapped.statusCode >= 500:
				log.Error(ctx, "request completed", append(attrs, logger.Duration(elapsed))...)
			case wrapped.statusCode >= 400:
				log.Warn(ctx, "request completed", append(attrs, logger.Duration(elapsed))...)
			case elapsed > cfg.SlowRequestThreshold:
				log.Warn(ctx, "request completed", append(attrs, logger.Duration(elapsed), slog.Bool("slow_request", true))...)
			default:
				tm.End(ctx, "request completed", attrs...)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}
