package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dayoung-lee/taskboard/internal/repository"
	"github.com/dayoung-lee/taskboard/internal/service"
	"github.com/dayoung-lee/taskboard/internal/storage"
	"github.com/dayoung-lee/taskboard/internal/token"
)

func newAuthSvc(t *testing.T) *service.AuthService {
	t.Helper()
	users := repository.NewKVUser(storage.NewMemory(), true)
	return service.NewAuthService(users, token.NewPrefix())
}

func TestAuthRegister(t *testing.T) {
	tests := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{
			name:  "success",
			input: service.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"},
		},
		{
			name:    "missing username",
			input:   service.RegisterInput{Email: "alice@example.com", Password: "secret1"},
			wantErr: service.ErrMissingFields,
		},
		{
			name:    "missing email",
			input:   service.RegisterInput{Username: "alice", Password: "secret1"},
			wantErr: service.ErrMissingFields,
		},
		{
			name:    "missing password",
			input:   service.RegisterInput{Username: "alice", Email: "alice@example.com"},
			wantErr: service.ErrMissingFields,
		},
		{
			name:    "duplicate username",
			input:   service.RegisterInput{Username: "test", Email: "fresh@example.com", Password: "secret1"},
			wantErr: service.ErrUsernameTaken,
		},
		{
			name:    "duplicate email",
			input:   service.RegisterInput{Username: "fresh", Email: "test@example.com", Password: "secret1"},
			wantErr: service.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthSvc(t)
			creds, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if creds.User.Username != tt.input.Username {
				t.Errorf("expected username %q, got %q", tt.input.Username, creds.User.Username)
			}
			if creds.User.Password != "" {
				t.Error("password leaked into credentials")
			}
			if !strings.HasPrefix(creds.Token, token.MockPrefix) {
				t.Errorf("unexpected token %q", creds.Token)
			}

			// The token must resolve back to the new user's id.
			userID, err := token.NewPrefix().Resolve(creds.Token)
			if err != nil {
				t.Fatalf("token does not resolve: %v", err)
			}
			if userID != creds.User.ID {
				t.Errorf("token resolves to %q, user id is %q", userID, creds.User.ID)
			}
		})
	}
}

func TestAuthRegister_UsernameCheckedBeforeEmail(t *testing.T) {
	svc := newAuthSvc(t)

	// Violates both uniqueness constraints; username wins.
	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "test",
		Email:    "test@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthLogin(t *testing.T) {
	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "demo account",
			input: service.LoginInput{Username: "test", Password: "test123"},
		},
		{
			name:    "unknown user",
			input:   service.LoginInput{Username: "ghost", Password: "test123"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{Username: "test", Password: "wrong"},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthSvc(t)
			creds, err := svc.Login(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if creds.User.ID != repository.DemoUserID {
				t.Errorf("expected demo user id, got %q", creds.User.ID)
			}
			if creds.User.Password != "" {
				t.Error("password leaked into credentials")
			}
		})
	}
}

func TestAuthLogin_FailureModesAreIndistinguishable(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, service.LoginInput{Username: "ghost", Password: "x"})
	_, wrongErr := svc.Login(ctx, service.LoginInput{Username: "test", Password: "x"})

	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("login failures differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthMe(t *testing.T) {
	svc := newAuthSvc(t)
	ctx := context.Background()

	user, err := svc.Me(ctx, repository.DemoUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "test" {
		t.Errorf("expected demo username, got %q", user.Username)
	}
	if user.Password != "" {
		t.Error("password leaked from Me")
	}

	if _, err := svc.Me(ctx, "999999"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestAuthLogout(t *testing.T) {
	svc := newAuthSvc(t)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout must always succeed, got %v", err)
	}
}
