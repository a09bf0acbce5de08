package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/rbac"
)

// Handler wires the token endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/token", h.issueToken)
}

type tokenResponse struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

// issueToken mints a bearer token for the current principal. Anonymous
// principals and principals that themselves authenticated with a token are
// refused: a token must not be used to obtain a fresh one.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	ident := rbac.IdentityFromContext(r.Context())
	if ident == nil || ident.Principal.IsAnonymous() || ident.ViaToken {
		httpx.Error(w, http.StatusForbidden, httpx.KindForbidden, "Invalid credentials")
		return
	}

	user, ok := ident.Principal.(*User)
	if !ok {
		httpx.Error(w, http.StatusForbidden, httpx.KindForbidden, "Invalid credentials")
		return
	}

	token, err := h.service.Tokens().Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{
		Token:      token,
		Expiration: int(h.service.Tokens().TTL().Seconds()),
	})
}
