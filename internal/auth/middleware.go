package auth

import (
	"log/slog"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/rbac"
)

// Middleware resolves request credentials and stores the identity in context.
// Requests without an Authorization header resolve to the anonymous principal;
// the permission gate decides downstream whether that is enough.
func Middleware(logger *slog.Logger, service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier, secret, ok := r.BasicAuth()
			if !ok {
				if r.Header.Get("Authorization") != "" {
					httpx.Error(w, http.StatusUnauthorized, httpx.KindUnauthorized, "Invalid credentials")
					return
				}
				identifier, secret = "", ""
			}

			principal, viaToken, err := service.Authenticate(r.Context(), identifier, secret)
			if err != nil {
				logger.Warn("authentication failed", slog.String("path", r.URL.Path))
				httpx.Error(w, http.StatusUnauthorized, httpx.KindUnauthorized, "Invalid credentials")
				return
			}

			ctx := rbac.ContextWithIdentity(r.Context(), &rbac.Identity{
				Principal: principal,
				ViaToken:  viaToken,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
