package users

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/posts"
	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// PostLister lists posts for a user's profile.
type PostLister interface {
	ListByAuthor(ctx context.Context, authorID int64, page, perPage int) ([]posts.Post, int, error)
}

// Handler manages user endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	posts     PostLister
	rbac      rbac.Middleware
	validator *validator.Validate
	baseURL   string
	perPage   int
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, postLister PostLister, rbacMiddleware rbac.Middleware, baseURL string, perPage int) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		posts:     postLister,
		rbac:      rbacMiddleware,
		validator: validator.New(),
		baseURL:   baseURL,
		perPage:   perPage,
	}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermReadArticles))
		r.Get("/{username}", h.getUser)
		r.Get("/{username}/posts", h.getUserPosts)
	})

	r.Put("/{username}/password", h.changePassword)

	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermCreateUsers))
		r.Post("/", h.createUser)
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.JSON(h.baseURL))
}

func (h *Handler) getUserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	page := pageParam(r)
	items, total, err := h.posts.ListByAuthor(r.Context(), user.ID, page, h.perPage)
	if err != nil {
		h.logger.Error("list user posts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	views := make([]posts.PostJSON, 0, len(items))
	for _, p := range items {
		views = append(views, p.JSON(h.baseURL))
	}
	pagination := shared.NewPagination(page, h.perPage, total)
	base := fmt.Sprintf("%s/api/v1/users/%s/posts", h.baseURL, user.Username)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse{
		Items: views,
		Prev:  pagination.PrevURL(base),
		Next:  pagination.NextURL(base),
		Count: total,
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, "Invalid JSON data")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, err.Error())
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create user failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/api/v1/users/%s", h.baseURL, user.Username))
	httpx.JSON(w, http.StatusCreated, user.JSON(h.baseURL))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, "Invalid JSON data")
		return
	}

	username := chi.URLParam(r, "username")
	ident := rbac.IdentityFromContext(r.Context())
	user, err := h.service.ChangePassword(r.Context(), ident, username, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.JSON(h.baseURL))
}

func pageParam(r *http.Request) int {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}
