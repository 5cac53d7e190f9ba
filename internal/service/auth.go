package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/repository"
	"github.com/dayoung-lee/taskboard/internal/token"
)

// AuthService handles registration, login and user resolution against the
// durable user table.
type AuthService struct {
	users  repository.UserRepository
	issuer token.Issuer
}

func NewAuthService(users repository.UserRepository, issuer token.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// Credentials is the {user, token} pair handed back on successful
// registration or login. User never carries the password.
type Credentials struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates a new account. Username uniqueness is checked before
// email, so a request violating both reports the username collision.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (Credentials, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return Credentials{}, ErrMissingFields
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return Credentials{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Credentials{}, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return Credentials{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Credentials{}, fmt.Errorf("failed to check email: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.credentials(user)
}

// Login validates username/password. Unknown user and wrong password
// collapse into the same error so responses never reveal which was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (Credentials, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Credentials{}, ErrInvalidCredentials
		}
		return Credentials{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password != input.Password {
		return Credentials{}, ErrInvalidCredentials
	}

	return s.credentials(user)
}

// Logout exists for contract symmetry; the backend holds no per-session
// server state, so there is nothing to revoke.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

// Me resolves a user id (as extracted from a bearer token) back to the
// account. A well-formed token naming a nonexistent user is ErrNotFound,
// distinct from the unauthorized case handled by the middleware.
func (s *AuthService) Me(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.WithoutPassword(), nil
}

func (s *AuthService) credentials(user model.User) (Credentials, error) {
	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return Credentials{User: user.WithoutPassword(), Token: tok}, nil
}
