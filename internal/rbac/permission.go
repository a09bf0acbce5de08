// Package rbac defines the permission bitmask and the per-request authorization gate.
package rbac

// Permission is an 8-bit flag set defining allowed actions.
type Permission uint8

const (
	PermReadArticles  Permission = 0x01
	PermWriteArticles Permission = 0x02
	PermCreateUsers   Permission = 0x04
	PermResetPassword Permission = 0x08
	PermAdminister    Permission = 0x80
)

// Can reports whether mask grants every flag in required.
func Can(mask, required Permission) bool {
	return mask&required == required
}

// Principal is the identity attached to a request. Exactly one principal is
// resolved per request; anonymous requests resolve to a read-only principal
// instead of a nil value.
type Principal interface {
	Can(required Permission) bool
	IsAdministrator() bool
	IsAnonymous() bool
}
