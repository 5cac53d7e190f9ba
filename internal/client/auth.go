package client

import (
	"context"
	"errors"
	"regexp"
	"sync"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

// authStorageKey holds the durable session record. Its presence at startup
// means logged in; the token is not re-validated against the backend.
const authStorageKey = "auth"

const networkErrorMessage = "Network error. Please try again."

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthStore holds the current session and drives login, registration and
// logout against the backend. Safe for use from multiple goroutines; when
// two requests overlap, whichever settles last wins.
type AuthStore struct {
	mu    sync.Mutex
	api   *API
	store storage.Store

	user   *model.User
	token  string
	status RequestStatus
	err    string
}

// NewAuthStore hydrates the session from durable storage if a record exists.
func NewAuthStore(ctx context.Context, api *API, store storage.Store) *AuthStore {
	s := &AuthStore{api: api, store: store}

	var sess Session
	if err := store.Get(ctx, authStorageKey, &sess); err == nil && sess.Token != "" {
		user := sess.User
		s.user = &user
		s.token = sess.Token
	}
	return s
}

// RegisterInput is what the registration form submits. ConfirmPassword is
// checked locally and never sent.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) validate() string {
	if in.Password != in.ConfirmPassword {
		return "Passwords do not match"
	}
	if len(in.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if !emailPattern.MatchString(in.Email) {
		return "Please enter a valid email address"
	}
	return ""
}

// Register validates locally, then submits. Validation failures never reach
// the network.
func (s *AuthStore) Register(ctx context.Context, input RegisterInput) error {
	if msg := input.validate(); msg != "" {
		s.fail(msg)
		return errors.New(msg)
	}

	s.begin()
	sess, err := s.api.Register(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		msg := userMessage(err, "Registration failed")
		s.fail(msg)
		return errors.New(msg)
	}

	s.establish(ctx, sess)
	return nil
}

func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	s.begin()
	sess, err := s.api.Login(ctx, username, password)
	if err != nil {
		msg := userMessage(err, "Login failed")
		s.fail(msg)
		return errors.New(msg)
	}

	s.establish(ctx, sess)
	return nil
}

// Logout notifies the backend and tears the session down locally whether or
// not that call went through.
func (s *AuthStore) Logout(ctx context.Context) {
	_ = s.api.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.status = StatusIdle
	s.err = ""
	_ = s.store.Delete(ctx, authStorageKey)
}

// ClearError resets the error, e.g. when a login form goes away so a stale
// message does not resurface on the next visit.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *AuthStore) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Token implements TokenSource for the task store.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *AuthStore) Status() RequestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.status = StatusPending
	s.err = ""
	s.mu.Unlock()
}

func (s *AuthStore) fail(msg string) {
	s.mu.Lock()
	s.status = StatusFailed
	s.err = msg
	s.mu.Unlock()
}

func (s *AuthStore) establish(ctx context.Context, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := sess.User
	s.user = &user
	s.token = sess.Token
	s.status = StatusSucceeded
	s.err = ""
	_ = s.store.Put(ctx, authStorageKey, sess)
}

// userMessage prefers the server's message, falls back per operation, and
// collapses transport failures into one generic retry suggestion.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return networkErrorMessage
}
