// internal/app/system/requestlog/requestlog.go

// Package requestlog provides request-id tagging and structured access
// logging for the HTTP surface.
package requestlog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

// HeaderName is the response header carrying the request id.
const HeaderName = "X-Request-Id"

// ID returns the request id assigned by Middleware, or "" when the
// request did not pass through it.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns each request a UUID, echoes it in the response
// header, and logs one line per request with method, path, status, and
// duration. An inbound X-Request-Id is honored so ids survive proxies.
func Middleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderName)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderName, id)

			ctx := context.WithValue(r.Context(), ctxKey{}, id)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
