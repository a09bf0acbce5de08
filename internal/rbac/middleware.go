package rbac

import (
	"log/slog"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
)

// Middleware wires authorization helpers for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// Require ensures the current principal holds every flag in required.
// Multi-flag requirements are expressed by OR-ing permissions together.
func (m Middleware) Require(required Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := IdentityFromContext(r.Context())
			if ident == nil || ident.Principal == nil {
				if m.Logger != nil {
					m.Logger.Error("no principal in request context", slog.String("path", r.URL.Path))
				}
				httpx.Error(w, http.StatusUnauthorized, httpx.KindUnauthorized, "Invalid credentials")
				return
			}
			if !ident.Principal.Can(required) {
				httpx.Error(w, http.StatusForbidden, httpx.KindForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
