package posts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/rbac"
)

const testBaseURL = "http://blog.test"

var writer = &auth.User{ID: 1, Username: "john", Permissions: rbac.PermReadArticles | rbac.PermWriteArticles}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withIdentity injects the authenticated principal the way the auth
// middleware would.
func withIdentity(ident *rbac.Identity, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident != nil {
			r = r.WithContext(rbac.ContextWithIdentity(r.Context(), ident))
		}
		next.ServeHTTP(w, r)
	})
}

func newPostsRouter(t *testing.T, ident *rbac.Identity) (http.Handler, *Service) {
	t.Helper()
	svc := NewService(newMockRepository(), nil)
	handler := NewHandler(discardLogger(), svc, rbac.Middleware{Logger: discardLogger()}, testBaseURL, 10)

	r := chi.NewRouter()
	r.Route("/api/v1/posts", handler.MountRoutes)
	return withIdentity(ident, r), svc
}

func identityFor(user *auth.User) *rbac.Identity {
	return &rbac.Identity{Principal: user}
}

func anonymousIdentity() *rbac.Identity {
	return &rbac.Identity{Principal: auth.Anonymous{}}
}

func seedPost(t *testing.T, svc *Service, author *auth.User, title string) *Post {
	t.Helper()
	post, err := svc.Create(context.Background(), author, CreatePostRequest{Title: title, Body: "body of the *blog* post"})
	require.NoError(t, err)
	return post
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestGetPost(t *testing.T) {
	router, svc := newPostsRouter(t, anonymousIdentity())
	seedPost(t, svc, writer, "Hello World")

	var got map[string]any
	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts/hello-world", "", &got)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testBaseURL+"/api/v1/posts/hello-world", got["url"])
	assert.Equal(t, "Hello World", got["title"])
	assert.Equal(t, "<p>body of the <em>blog</em> post</p>", got["body_html"])
	assert.Equal(t, testBaseURL+"/api/v1/users/john", got["author"])
}

func TestGetPostNotFound(t *testing.T) {
	router, _ := newPostsRouter(t, anonymousIdentity())

	var got map[string]any
	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts/missing", "", &got)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", got["error"])
}

func TestListPostsAnonymous(t *testing.T) {
	router, svc := newPostsRouter(t, anonymousIdentity())
	seedPost(t, svc, writer, "First")
	seedPost(t, svc, writer, "Second")

	var got struct {
		Items []map[string]any `json:"items"`
		Prev  *string          `json:"prev"`
		Next  *string          `json:"next"`
		Count int              `json:"count"`
	}
	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts/", "", &got)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, got.Count)
	assert.Len(t, got.Items, 2)
	assert.Nil(t, got.Prev)
	assert.Nil(t, got.Next)
}

func TestListPostsPaginationLinks(t *testing.T) {
	router, svc := newPostsRouter(t, anonymousIdentity())
	for i := 0; i < 15; i++ {
		seedPost(t, svc, writer, "Post "+strings.Repeat("x", i+1))
	}

	var got struct {
		Prev  *string `json:"prev"`
		Next  *string `json:"next"`
		Count int     `json:"count"`
	}
	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts/?page=1", "", &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15, got.Count)
	assert.Nil(t, got.Prev)
	require.NotNil(t, got.Next)
	assert.Equal(t, testBaseURL+"/api/v1/posts?page=2", *got.Next)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts/?page=2", "", &got)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Prev)
	assert.Equal(t, testBaseURL+"/api/v1/posts?page=1", *got.Prev)
	assert.Nil(t, got.Next)
}

func TestCreatePost(t *testing.T) {
	router, _ := newPostsRouter(t, identityFor(writer))

	var got map[string]any
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/", `{"title":"New Post","body":"hello"}`, &got)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testBaseURL+"/api/v1/posts/new-post", rec.Header().Get("Location"))
	assert.Equal(t, "New Post", got["title"])
}

func TestCreatePostAnonymousForbidden(t *testing.T) {
	router, _ := newPostsRouter(t, anonymousIdentity())

	var got map[string]any
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/", `{"title":"t","body":"b"}`, &got)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", got["error"])
}

func TestCreatePostUnauthenticated(t *testing.T) {
	router, _ := newPostsRouter(t, nil)

	var got map[string]any
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/", `{"title":"t","body":"b"}`, &got)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", got["error"])
}

func TestCreatePostInvalidJSON(t *testing.T) {
	router, _ := newPostsRouter(t, identityFor(writer))

	var got map[string]any
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/", `{"title":`, &got)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad request", got["error"])
	assert.Equal(t, "Invalid JSON data", got["message"])
}

func TestCreatePostMissingFields(t *testing.T) {
	router, _ := newPostsRouter(t, identityFor(writer))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/", `{"body":"only a body"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostByOtherUserForbidden(t *testing.T) {
	other := &auth.User{ID: 2, Username: "susan", Permissions: rbac.PermReadArticles | rbac.PermWriteArticles}
	router, svc := newPostsRouter(t, identityFor(other))
	seedPost(t, svc, writer, "Johns Post")

	var got map[string]any
	rec := doJSON(t, router, http.MethodPut, "/api/v1/posts/johns-post", `{"body":"hijacked"}`, &got)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", got["error"])
}

func TestUpdatePost(t *testing.T) {
	router, svc := newPostsRouter(t, identityFor(writer))
	seedPost(t, svc, writer, "Johns Post")

	var got map[string]any
	rec := doJSON(t, router, http.MethodPut, "/api/v1/posts/johns-post", `{"body":"*updated*"}`, &got)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p><em>updated</em></p>", got["body_html"])
	assert.Equal(t, testBaseURL+"/api/v1/posts/johns-post", got["url"])
}
