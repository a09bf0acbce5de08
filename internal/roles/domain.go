package roles

import (
	"time"

	"github.com/inkwell-blog/inkwell/internal/rbac"
)

// Role maps a named role to its permission bitmask. A user's permission set
// equals its role's bitmask. Exactly one role is the default for new users.
type Role struct {
	ID          int64
	Name        string
	Permissions rbac.Permission
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// The built-in role set. Seeding upserts by name so it can run at every startup.
var builtin = []Role{
	{Name: "User", Permissions: rbac.PermReadArticles | rbac.PermWriteArticles, IsDefault: true},
	{Name: "Administrator", Permissions: rbac.Permission(0xFF), IsDefault: false},
}
