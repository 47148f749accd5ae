package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

var (
	// ErrEmailExists is returned by SignUp when the email is registered.
	ErrEmailExists = errors.New("user already exists with this email")
	// ErrInvalidCredentials is returned by SignIn for unknown emails and
	// wrong passwords alike, so the two are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Store is the slice of persistence the auth service needs.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	RefreshUserOnLogin(ctx context.Context, email, name, image string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// Service creates accounts and issues bearer tokens. The admin allowlist is
// fixed at construction and consulted only when an account is created.
type Service struct {
	store       Store
	secret      []byte
	adminEmails []string
	now         func() time.Time
}

// NewService wires the auth service. adminEmails is the configured
// allowlist of emails that become admins on first sign-up.
func NewService(st Store, secret []byte, adminEmails []string) *Service {
	return &Service{
		store:       st,
		secret:      secret,
		adminEmails: adminEmails,
		now:         time.Now,
	}
}

// roleFor decides a new account's role from the allowlist. Comparison is
// exact; emails are stored case-sensitively.
func (s *Service) roleFor(email string) string {
	for _, admin := range s.adminEmails {
		if admin == email {
			return models.RoleAdmin
		}
	}
	return models.RoleMember
}

// SignUp registers a credentials account and returns it with a fresh token.
// The default display name is the email's local part.
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         s.roleFor(email),
		Provider:     models.ProviderCredentials,
		ProviderID:   email,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	token, err := NewToken(s.secret, u, s.now())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// SignIn verifies a credentials account and returns it with a fresh token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.PasswordHash == "" || !CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.store.TouchLastLogin(ctx, u.ID, s.now()); err != nil {
		return nil, "", err
	}

	token, err := NewToken(s.secret, u, s.now())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginWithGoogle upserts an account from a verified Google profile and
// returns it with a fresh token. Existing accounts get their display fields
// refreshed; new accounts get their role from the allowlist.
func (s *Service) LoginWithGoogle(ctx context.Context, p *GoogleProfile) (*models.User, string, error) {
	u, err := s.store.RefreshUserOnLogin(ctx, p.Email, p.Name, p.Picture)
	if errors.Is(err, store.ErrNotFound) {
		u = &models.User{
			ID:         uuid.NewString(),
			Email:      p.Email,
			Name:       p.Name,
			Image:      p.Picture,
			Role:       s.roleFor(p.Email),
			Provider:   models.ProviderGoogle,
			ProviderID: p.Sub,
		}
		if u.Name == "" {
			u.Name = p.Email
		}
		err = s.store.CreateUser(ctx, u)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := NewToken(s.secret, u, s.now())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
