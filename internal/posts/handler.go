package posts

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Handler manages post endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	validator *validator.Validate
	baseURL   string
	perPage   int
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbacMiddleware rbac.Middleware, baseURL string, perPage int) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		rbac:      rbacMiddleware,
		validator: validator.New(),
		baseURL:   baseURL,
		perPage:   perPage,
	}
}

// MountRoutes registers post routes. Reads require the read mask, writes the
// write mask; anonymous readers pass the read gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermReadArticles))
		r.Get("/", h.listPosts)
		r.Get("/{slug}", h.getPost)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.PermWriteArticles))
		r.Post("/", h.createPost)
		r.Put("/{slug}", h.updatePost)
	})
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	items, total, err := h.service.List(r.Context(), page, h.perPage)
	if err != nil {
		h.logger.Error("list posts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	views := make([]PostJSON, 0, len(items))
	for _, p := range items {
		views = append(views, p.JSON(h.baseURL))
	}
	pagination := shared.NewPagination(page, h.perPage, total)
	base := fmt.Sprintf("%s/api/v1/posts", h.baseURL)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse{
		Items: views,
		Prev:  pagination.PrevURL(base),
		Next:  pagination.NextURL(base),
		Count: total,
	})
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post.JSON(h.baseURL))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, "Invalid JSON data")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, err.Error())
		return
	}

	author, ok := currentUser(r)
	if !ok {
		httpx.Error(w, http.StatusForbidden, httpx.KindForbidden, "Insufficient permissions")
		return
	}

	post, err := h.service.Create(r.Context(), author, req)
	if err != nil {
		h.logger.Error("create post failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/api/v1/posts/%s", h.baseURL, post.Slug))
	httpx.JSON(w, http.StatusCreated, post.JSON(h.baseURL))
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, httpx.KindBadRequest, "Invalid JSON data")
		return
	}

	editor, ok := currentUser(r)
	if !ok {
		httpx.Error(w, http.StatusForbidden, httpx.KindForbidden, "Insufficient permissions")
		return
	}

	slug := chi.URLParam(r, "slug")
	post, err := h.service.Update(r.Context(), editor, slug, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post.JSON(h.baseURL))
}

func currentUser(r *http.Request) (*auth.User, bool) {
	ident := rbac.IdentityFromContext(r.Context())
	if ident == nil {
		return nil, false
	}
	user, ok := ident.Principal.(*auth.User)
	return user, ok
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
