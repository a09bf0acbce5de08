package posts

import (
	"fmt"
	"time"
)

// Post is a published article. The slug is globally unique and derived from
// the title; created_at is set once, updated_at refreshes on every mutation.
type Post struct {
	ID             int64
	Title          string
	Slug           string
	Body           string
	BodyHTML       string
	AuthorID       int64
	AuthorUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// UpdatePostRequest is the payload for editing a post. Unset fields keep
// their prior value.
type UpdatePostRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// PostJSON is the wire representation of a post.
type PostJSON struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    string    `json:"author"`
}

// JSON builds the wire representation with absolute URLs.
func (p Post) JSON(baseURL string) PostJSON {
	return PostJSON{
		URL:       fmt.Sprintf("%s/api/v1/posts/%s", baseURL, p.Slug),
		Title:     p.Title,
		Body:      p.Body,
		BodyHTML:  p.BodyHTML,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    fmt.Sprintf("%s/api/v1/users/%s", baseURL, p.AuthorUsername),
	}
}
