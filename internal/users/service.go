package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/roles"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// RoleResolver picks the role for a new user.
type RoleResolver interface {
	Default(ctx context.Context) (*roles.Role, error)
	ByName(ctx context.Context, name string) (*roles.Role, error)
}

// Config holds the bootstrap identity rules for user creation. Role assignment
// is a pure function of (email, config): the configured admin email gets the
// Administrator role, everyone else gets the default role.
type Config struct {
	AdminEmail string
}

// Service handles user business logic.
type Service struct {
	repo  RepositoryPort
	roles RoleResolver
	cfg   Config
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, roleResolver RoleResolver, cfg Config) *Service {
	return &Service{repo: repo, roles: roleResolver, cfg: cfg}
}

// GetByUsername returns the user with the given username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Create registers a new user with the role derived from its email.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if !usernameRe.MatchString(req.Username) {
		return nil, fmt.Errorf("%w: usernames must have only letters, numbers, dots or underscores", shared.ErrValidation)
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("%w: password must not be empty", shared.ErrValidation)
	}

	role, err := s.roleFor(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("users: resolve role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	return s.repo.Create(ctx, req.Username, req.Email, string(hash), role.ID)
}

// ChangePassword replaces the target user's password. Allowed for the target
// user itself and for principals holding ADMINISTER.
func (s *Service) ChangePassword(ctx context.Context, ident *rbac.Identity, username, password string) (*User, error) {
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password must not be empty", shared.ErrValidation)
	}

	target, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.mayChangePassword(ident, target) {
		return nil, fmt.Errorf("%w: insufficient permissions", shared.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, target.ID, string(hash)); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) mayChangePassword(ident *rbac.Identity, target *User) bool {
	if ident == nil || ident.Principal == nil {
		return false
	}
	if ident.Principal.IsAdministrator() {
		return true
	}
	current, ok := ident.Principal.(*auth.User)
	return ok && current.ID == target.ID
}

func (s *Service) roleFor(ctx context.Context, email string) (*roles.Role, error) {
	if s.cfg.AdminEmail != "" && email == s.cfg.AdminEmail {
		return s.roles.ByName(ctx, "Administrator")
	}
	return s.roles.Default(ctx)
}
