package roles

import (
	"context"
	"fmt"
)

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Seed upserts the built-in role set. Safe to run at every startup; it is the
// routine that enforces the single-default-role invariant.
func (s *Service) Seed(ctx context.Context) error {
	for _, role := range builtin {
		if _, err := s.repo.Upsert(ctx, role); err != nil {
			return fmt.Errorf("roles: seed %q: %w", role.Name, err)
		}
	}
	return nil
}

// Default returns the role assigned to new users.
func (s *Service) Default(ctx context.Context) (*Role, error) {
	return s.repo.GetDefault(ctx)
}

// ByName returns the role with the given name.
func (s *Service) ByName(ctx context.Context, name string) (*Role, error) {
	return s.repo.GetByName(ctx, name)
}
