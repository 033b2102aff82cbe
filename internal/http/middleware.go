package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/http/handlers"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
// Each request gets its own logger in the context; 'verbose' lowers the level
// of that logger only.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.Default().With("method", r.Method, "path", r.URL.Path)
		if r.URL.Query().Get("verbose") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
		logger.Info("incoming request", "url", r.URL.String())

		ctx := log.WithContext(r.Context(), logger)
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx = context.WithValue(ctx, handlers.DryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
