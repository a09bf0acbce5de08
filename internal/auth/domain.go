package auth

import (
	"time"

	"github.com/inkwell-blog/inkwell/internal/rbac"
)

// User is an authenticated account, resolved from the store together with its
// role's permission bitmask.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	RoleID       int64
	Permissions  rbac.Permission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Can reports whether the user's role grants every flag in required.
func (u *User) Can(required rbac.Permission) bool {
	return rbac.Can(u.Permissions, required)
}

// IsAdministrator reports whether the user holds the ADMINISTER flag.
func (u *User) IsAdministrator() bool {
	return u.Can(rbac.PermAdminister)
}

// IsAnonymous always returns false for a stored user.
func (u *User) IsAnonymous() bool {
	return false
}

// Anonymous is the principal attached to unauthenticated requests. It can read
// articles and nothing else.
type Anonymous struct{}

// Can reports whether the anonymous permission set grants required.
func (Anonymous) Can(required rbac.Permission) bool {
	return rbac.Can(rbac.PermReadArticles, required)
}

// IsAdministrator always returns false.
func (Anonymous) IsAdministrator() bool { return false }

// IsAnonymous always returns true.
func (Anonymous) IsAnonymous() bool { return true }

var (
	_ rbac.Principal = (*User)(nil)
	_ rbac.Principal = Anonymous{}
)
