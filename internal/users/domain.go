package users

import (
	"fmt"
	"time"
)

// User represents a user account for the management endpoints. The password
// hash never leaves the repository layer.
type User struct {
	ID        int64
	Username  string
	Email     string
	RoleID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserRequest is the payload for the admin-only registration endpoint.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,max=64,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the payload for the password-change endpoint.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// UserJSON is the wire representation of a user.
type UserJSON struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Posts    string `json:"posts"`
}

// JSON builds the wire representation with absolute URLs.
func (u User) JSON(baseURL string) UserJSON {
	profile := fmt.Sprintf("%s/api/v1/users/%s", baseURL, u.Username)
	return UserJSON{
		URL:      profile,
		Username: u.Username,
		Email:    u.Email,
		Posts:    profile + "/posts",
	}
}
