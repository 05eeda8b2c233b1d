package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "themis",
	Name:      "http_requests_total",
	Help:      "HTTP requests by method, route pattern and status code",
}, []string{"method", "pattern", "status"})

var httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "themis",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency by route pattern",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "pattern"})

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// metricsMiddleware records request counts and latencies. The chi route
// pattern keeps the label cardinality bounded.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				pattern = p
			}
		}

		httpRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		httpDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

// authMiddleware validates authentication for protected requests
func authMiddleware(authUC usecase.AuthUseCaseInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For NoAuthn mode or when authUC is not configured, always use anonymous user
			if authUC == nil || authUC.IsNoAuthn() {
				token := auth.NewAnonymousUser()
				ctx := auth.ContextWithToken(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Get tokens from cookies
			tokenIDCookie, err := r.Cookie("token_id")
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			tokenSecretCookie, err := r.Cookie("token_secret")
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			tokenID := auth.TokenID(tokenIDCookie.Value)
			tokenSecret := auth.TokenSecret(tokenSecretCookie.Value)

			token, err := authUC.ValidateToken(r.Context(), tokenID, tokenSecret)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
