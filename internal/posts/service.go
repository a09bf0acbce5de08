package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

const (
	// slugRetryLimit bounds the insert retries when concurrent writers race
	// for the same slug; the unique index on posts.slug is the arbiter.
	slugRetryLimit = 10

	postCacheTTL = 5 * time.Minute
)

// Service handles post business logic.
type Service struct {
	repo  RepositoryPort
	cache *redis.Client
	group singleflight.Group
}

// NewService builds a Service instance. The cache client may be nil, in which
// case reads always hit the repository.
func NewService(repo RepositoryPort, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create publishes a new post by the given author. The slug is derived from
// the title and deduplicated with numeric suffixes against existing posts.
func (s *Service) Create(ctx context.Context, author *auth.User, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", shared.ErrValidation)
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: body must not be empty", shared.ErrValidation)
	}

	now := time.Now().UTC()
	post := &Post{
		Title:          req.Title,
		Body:           req.Body,
		BodyHTML:       RenderBody(req.Body),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.persistWithSlug(ctx, post, Slugify(req.Title), s.repo.Insert); err != nil {
		return nil, err
	}
	return post, nil
}

// Update edits an existing post. Only the author may edit it; holding the
// administrator mask does not override ownership. The slug is regenerated
// only when the new title normalizes to a different slug than the old one,
// so cosmetic title edits keep existing URLs stable.
func (s *Service) Update(ctx context.Context, editor *auth.User, slug string, req UpdatePostRequest) (*Post, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editor.ID {
		return nil, fmt.Errorf("%w: insufficient permissions", shared.ErrForbidden)
	}

	oldSlug := post.Slug
	slugChanged := false

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", shared.ErrValidation)
		}
		slugChanged = Slugify(*req.Title) != Slugify(post.Title)
		post.Title = *req.Title
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, fmt.Errorf("%w: body must not be empty", shared.ErrValidation)
		}
		post.Body = *req.Body
		post.BodyHTML = RenderBody(*req.Body)
	}

	post.UpdatedAt = time.Now().UTC()

	if slugChanged {
		err = s.persistWithSlug(ctx, post, Slugify(post.Title), s.repo.Update)
	} else {
		err = s.repo.Update(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldSlug, post.Slug)
	return post, nil
}

// GetBySlug returns the post with the given slug, serving repeated reads from
// the cache and collapsing concurrent misses into a single repository query.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	if post, ok := s.cached(ctx, slug); ok {
		return post, nil
	}

	v, err, _ := s.group.Do("post:"+slug, func() (any, error) {
		post, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		s.fillCache(ctx, post)
		return post, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Post), nil
}

// List returns a page of all posts, newest first, with the total count.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Post, int, error) {
	pg := shared.NewPagination(page, perPage, 0)
	return s.repo.List(ctx, pg.PerPage, pg.Offset())
}

// ListByAuthor returns a page of the author's posts, newest first, with the
// author's total count.
func (s *Service) ListByAuthor(ctx context.Context, authorID int64, page, perPage int) ([]Post, int, error) {
	pg := shared.NewPagination(page, perPage, 0)
	return s.repo.ListByAuthor(ctx, authorID, pg.PerPage, pg.Offset())
}

// persistWithSlug probes for a free slug starting from the normalized
// candidate, appending "-2", "-3", ... on collision, then saves. If a
// concurrent writer steals the slug between the probe and the save, the
// unique index rejects the write and the probe resumes at the next counter.
func (s *Service) persistWithSlug(ctx context.Context, post *Post, candidate string, save func(context.Context, *Post) error) error {
	slug := candidate
	next := 2
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		for {
			taken, err := s.repo.SlugExists(ctx, slug, post.ID)
			if err != nil {
				return err
			}
			if !taken {
				break
			}
			slug = fmt.Sprintf("%s%s%d", candidate, slugSeparator, next)
			next++
		}

		post.Slug = slug
		err := save(ctx, post)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrDuplicate) {
			return err
		}
		slug = fmt.Sprintf("%s%s%d", candidate, slugSeparator, next)
		next++
	}
	return fmt.Errorf("posts: no free slug for %q after %d attempts", candidate, slugRetryLimit)
}

func postCacheKey(slug string) string {
	return "post:" + slug
}

func (s *Service) cached(ctx context.Context, slug string) (*Post, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, postCacheKey(slug)).Bytes()
	if err != nil {
		return nil, false
	}
	var post Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, false
	}
	return &post, true
}

func (s *Service) fillCache(ctx context.Context, post *Post) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	s.cache.Set(ctx, postCacheKey(post.Slug), data, postCacheTTL)
}

func (s *Service) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, postCacheKey(slug))
	}
	s.cache.Del(ctx, keys...)
}
