package rbac

import "context"

// Identity carries the resolved principal and how it was resolved. ViaToken is
// recorded so the token endpoint can refuse to mint a token for a principal
// that itself authenticated with one.
type Identity struct {
	Principal Principal
	ViaToken  bool
}

type identityContextKey struct{}

// ContextWithIdentity stores the request identity in context.
func ContextWithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext extracts the request identity from context.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityContextKey{}).(*Identity)
	return ident
}
