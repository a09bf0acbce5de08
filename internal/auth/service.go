package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Service resolves request credentials to a principal.
type Service struct {
	repo   Repository
	tokens *TokenCodec
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenCodec) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Tokens exposes the codec for the token-issuing handler.
func (s *Service) Tokens() *TokenCodec {
	return s.tokens
}

// Authenticate resolves an (identifier, secret) pair to a principal.
//
// The three paths are mutually exclusive and checked in this order:
// an empty identifier resolves to the anonymous principal; a non-empty
// identifier with an empty secret is interpreted as a bearer token, never as a
// username with a blank password; otherwise the identifier is looked up as a
// username and then as an email and the secret is verified against the stored
// hash. The returned flag reports whether resolution went through the token
// path.
func (s *Service) Authenticate(ctx context.Context, identifier, secret string) (rbac.Principal, bool, error) {
	if identifier == "" {
		return Anonymous{}, false, nil
	}

	if secret == "" {
		userID, err := s.tokens.Verify(identifier)
		if err != nil {
			return nil, true, shared.ErrUnauthorized
		}
		user, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, true, shared.ErrUnauthorized
		}
		return user, true, nil
	}

	user, err := s.repo.FindByUsername(ctx, identifier)
	if errors.Is(err, shared.ErrNotFound) {
		user, err = s.repo.FindByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, false, shared.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return nil, false, shared.ErrUnauthorized
	}
	return user, false, nil
}
