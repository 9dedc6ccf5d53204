package http

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"career-roi/logger"
)

const requestIDHeader = "X-Request-ID"

func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)

		if ok, wait := limiter.Allow(client); !ok {
			logger.Warnf(r.Context(), "rate limit exceeded for %s", client)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeError(r.Context(), w, errRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// RequestMiddleware tags the request context with a request id for logging, logs the
// outcome of every request and turns panics into 500 responses.
func RequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithFields(r.Context(), "request_id", id)
		r = r.WithContext(ctx)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				writeError(ctx, rec, fmt.Errorf("panic: %v", p))
			}
			logger.Infof(ctx, "%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
		}()

		next.ServeHTTP(rec, r)
	})
}
