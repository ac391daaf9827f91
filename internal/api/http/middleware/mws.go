package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shrtyk/memdb/internal/core/ports/metrics"
	"github.com/shrtyk/memdb/pkg/logger"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"
)

type mws struct {
	log     *slog.Logger
	metrics metrics.Metrics
}

func NewMiddlewares(l *slog.Logger, m metrics.Metrics) *mws {
	return &mws{
		log:     l,
		metrics: m,
	}
}

type customResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *customResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}

	w.statusCode = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *customResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (m *mws) HttpMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		cw := &customResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(cw, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}

		m.metrics.HttpRequest(
			cw.statusCode,
			r.Method,
			pattern,
			time.Since(start).Seconds())
	})
}

func (m *mws) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxWithLog := logger.ToCtx(r.Context(), m.log.With(
			slog.String("ip", realip.FromRequest(r)),
			slog.String("user-agent", r.UserAgent()),
			slog.String("request_id", uuid.New().String()),
			slog.String("method", r.Method),
			slog.String("url", r.URL.RequestURI()),
		))

		newReq := r.WithContext(ctxWithLog)
		next.ServeHTTP(w, newReq)
	})
}

// RequestTimeout bounds the request context. A non-positive d leaves it untouched.
func (m *mws) RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit applies one token bucket shared by all clients.
// A non-positive rps disables limiting.
func (m *mws) RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.FromCtx(r.Context()).Warn("request rate limited")
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
