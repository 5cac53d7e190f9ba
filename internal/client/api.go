// Package client holds the session and task stores a frontend drives, plus
// the thin HTTP client they speak to the backend through. State transitions
// are explicit request-lifecycle events rather than implicit control flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dayoung-lee/taskboard/internal/model"
)

// APIError is a response the server answered with a non-2xx status. Message
// carries the server's user-facing message when the body was parseable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// API issues JSON requests against the backend's base URL.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the {user, token} envelope returned by register and login, and
// the shape persisted as the durable session record.
type Session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// CreateTask is the creation payload; zero-value status and priority let the
// backend apply its defaults.
type CreateTask struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      model.TaskStatus   `json:"status,omitempty"`
	Priority    model.TaskPriority `json:"priority,omitempty"`
}

// UpdateTask is a partial update; nil fields are not sent.
type UpdateTask struct {
	ID          string              `json:"-"`
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Status      *model.TaskStatus   `json:"status,omitempty"`
	Priority    *model.TaskPriority `json:"priority,omitempty"`
}

func (a *API) Register(ctx context.Context, username, email, password string) (Session, error) {
	var sess Session
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/register", "", registerPayload{
		Username: username,
		Email:    email,
		Password: password,
	}, &sess)
	return sess, err
}

func (a *API) Login(ctx context.Context, username, password string) (Session, error) {
	var sess Session
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/login", "", loginPayload{
		Username: username,
		Password: password,
	}, &sess)
	return sess, err
}

func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, http.MethodPost, "/api/v1/auth/logout", "", nil, nil)
}

func (a *API) Me(ctx context.Context, token string) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	err := a.do(ctx, http.MethodGet, "/api/v1/auth/me", token, nil, &resp)
	return resp.User, err
}

func (a *API) FetchTasks(ctx context.Context, token string) ([]model.Task, error) {
	var resp struct {
		Tasks []model.Task `json:"tasks"`
	}
	err := a.do(ctx, http.MethodGet, "/api/v1/tasks", token, nil, &resp)
	return resp.Tasks, err
}

func (a *API) CreateTask(ctx context.Context, token string, input CreateTask) (model.Task, error) {
	var resp struct {
		Task model.Task `json:"task"`
	}
	err := a.do(ctx, http.MethodPost, "/api/v1/tasks", token, input, &resp)
	return resp.Task, err
}

func (a *API) UpdateTask(ctx context.Context, token string, input UpdateTask) (model.Task, error) {
	var resp struct {
		Task model.Task `json:"task"`
	}
	err := a.do(ctx, http.MethodPut, "/api/v1/tasks/"+input.ID, token, input, &resp)
	return resp.Task, err
}

func (a *API) DeleteTask(ctx context.Context, token, taskID string) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/tasks/"+taskID, token, nil, nil)
}

func (a *API) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		// Non-OK without a parseable body still yields an APIError.
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
