package client

import (
	"context"
	"errors"
	"sync"

	"github.com/dayoung-lee/taskboard/internal/model"
)

// TokenSource supplies the bearer token for task requests; the auth store
// implements it. The task store never authenticates on its own.
type TokenSource interface {
	Token() string
}

// TaskStore holds the current user's task list, kept newest-first, and a
// client-only status filter that never touches the network.
type TaskStore struct {
	mu     sync.Mutex
	api    *API
	tokens TokenSource

	tasks  []model.Task
	filter model.Filter
	status RequestStatus
	err    string
}

func NewTaskStore(api *API, tokens TokenSource) *TaskStore {
	return &TaskStore{api: api, tokens: tokens, filter: model.FilterAll}
}

// Fetch replaces the list with the server's collection, sorted newest-first.
func (s *TaskStore) Fetch(ctx context.Context) error {
	s.begin()
	tasks, err := s.api.FetchTasks(ctx, s.tokens.Token())
	if err != nil {
		return s.fail(err, "Failed to fetch tasks")
	}

	model.SortTasksByCreatedAt(tasks)
	s.mu.Lock()
	s.tasks = tasks
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Create inserts the new task and re-sorts, so it surfaces at the top.
func (s *TaskStore) Create(ctx context.Context, input CreateTask) error {
	s.begin()
	created, err := s.api.CreateTask(ctx, s.tokens.Token(), input)
	if err != nil {
		return s.fail(err, "Failed to create task")
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{created}, s.tasks...)
	model.SortTasksByCreatedAt(s.tasks)
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Update replaces the matching record and re-sorts.
func (s *TaskStore) Update(ctx context.Context, input UpdateTask) error {
	s.begin()
	updated, err := s.api.UpdateTask(ctx, s.tokens.Token(), input)
	if err != nil {
		return s.fail(err, "Failed to update task")
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			model.SortTasksByCreatedAt(s.tasks)
			break
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Delete removes the record by filtering on id; the remaining order is
// preserved, not re-sorted.
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	s.begin()
	if err := s.api.DeleteTask(ctx, s.tokens.Token(), taskID); err != nil {
		return s.fail(err, "Failed to delete task")
	}

	s.mu.Lock()
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != taskID {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// SetFilter is a pure local transition.
func (s *TaskStore) SetFilter(f model.Filter) {
	if !f.IsValid() {
		return
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

func (s *TaskStore) Filter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks returns a copy of the full list.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Visible returns the list restricted to the current filter.
func (s *TaskStore) Visible() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Matches(t.Status) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskStore) Status() RequestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *TaskStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TaskStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *TaskStore) begin() {
	s.mu.Lock()
	s.status = StatusPending
	s.err = ""
	s.mu.Unlock()
}

// fail records the message and leaves the list untouched.
func (s *TaskStore) fail(err error, fallback string) error {
	msg := taskMessage(err, fallback)
	s.mu.Lock()
	s.status = StatusFailed
	s.err = msg
	s.mu.Unlock()
	return errors.New(msg)
}

// taskMessage uses the fixed per-operation message for server rejections and
// the generic retry suggestion for transport failures.
func taskMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fallback
	}
	return networkErrorMessage
}
