package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rgehrsitz/firbgo/internal/logging"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an ID and logs its outcome
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctxLogger := s.log.With(slog.String("requestID", requestID))
		ctx := logging.ToContext(r.Context(), ctxLogger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		ctxLogger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// clientLimiter hands out one token bucket per client address. Idle buckets
// expire so the map does not grow without bound.
type clientLimiter struct {
	limit   rate.Limit
	burst   int
	buckets *cache.Cache
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if perSecond <= 0 {
		perSecond = 20
	}
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		buckets: cache.New(10*time.Minute, 20*time.Minute),
	}
}

func (cl *clientLimiter) get(client string) *rate.Limiter {
	if l, ok := cl.buckets.Get(client); ok {
		return l.(*rate.Limiter)
	}
	l := rate.NewLimiter(cl.limit, cl.burst)
	// Add fails when another request created the bucket first
	if err := cl.buckets.Add(client, l, cache.DefaultExpiration); err != nil {
		if existing, ok := cl.buckets.Get(client); ok {
			return existing.(*rate.Limiter)
		}
	}
	return l
}

func (cl *clientLimiter) Allow(client string) bool {
	l := cl.get(client)
	cl.buckets.SetDefault(client, l)
	return l.Allow()
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !s.limiter.Allow(client) {
			logging.FromContext(r.Context()).Warn("Rate limit exceeded", "client", client, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
