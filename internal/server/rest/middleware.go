package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/logging"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/auth"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// RequestID tags each request with the incoming X-Request-ID or a fresh
// UUID, and echoes it in the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Observe installs a request-scoped logger, then logs and measures every
// request once it completes. The route label is the chi pattern, not the
// raw path, to keep metric cardinality bounded.
func Observe(logger logging.Logger, reg *metrics.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("request_id", RequestIDFromContext(r.Context()))
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r.WithContext(withLogger(r.Context(), reqLogger)))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)

			if reg != nil {
				reg.ObserveRequest(r.Method, route, status, elapsed)
			}

			attrs := []any{
				"method", r.Method,
				"route", route,
				"status", status,
				"duration_ms", elapsed.Milliseconds(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				reqLogger.Error(r.Context(), "request completed with error", attrs...)
			case status >= http.StatusBadRequest:
				reqLogger.Warn(r.Context(), "request completed with client error", attrs...)
			default:
				reqLogger.Info(r.Context(), "request completed", attrs...)
			}
		})
	}
}

// Recover turns a panic in a handler into a logged 500.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rv := recover()
				if rv == nil {
					return
				}
				if rv == http.ErrAbortHandler {
					panic(rv)
				}

				loggerFrom(r.Context()).Error(r.Context(), "panic recovered", "panic", rv, "path", r.URL.Path)
				_ = Response{Code: http.StatusInternalServerError, Error: errors.New("panic")}.Encode(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows credentialed requests from the configured origins. A "*"
// entry reflects any origin.
func CORS(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			for _, o := range allowedOrigins {
				if o == "*" || strings.EqualFold(o, origin) {
					allowed = true
					break
				}
			}

			w.Header().Add("Vary", "Origin")
			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds the request context, and with it every store call.
func Timeout(d time.Duration) Middleware {
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

func authFailureReason(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		return "missing"
	case errors.Is(err, common.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}

// reject answers the request with err through the regular error path.
func reject(err error) http.Handler {
	return HTTPHandler(func(http.ResponseWriter, *http.Request) Response {
		return Fail(err)
	})
}

// Session requires a valid session cookie and attaches its claims to the
// request context. A missing cookie is answered with 403, a bad one with
// 401; in both cases the wrapped handler is not called. A cookie that cannot
// be checked because no secret is configured counts as a bad one.
func (s *Server) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(common.SessionCookieName); err == nil {
			token = c.Value
		}

		claims, err := s.sessions.Verify(token)
		if errors.Is(err, common.ErrSecretNotSet) {
			loggerFrom(r.Context()).Error(r.Context(), "session secret is not set, rejecting session cookie")
			err = common.ErrInvalidToken
		}
		if err != nil {
			if s.metrics != nil {
				s.metrics.IncAuthFailure(authFailureReason(err))
			}
			reject(err).ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}
