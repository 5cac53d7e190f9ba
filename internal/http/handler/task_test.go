package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dayoung-lee/taskboard/internal/http/handler"
	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/repository"
	"github.com/dayoung-lee/taskboard/internal/service"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

func newTaskHandler() *handler.TaskHandler {
	tasks := repository.NewKVTask(storage.NewMemory(), false)
	return handler.NewTaskHandler(service.NewTaskService(tasks))
}

func doTaskRequest(h *handler.TaskHandler, method, path, body, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type taskEnvelope struct {
	Task model.Task `json:"task"`
}

type tasksEnvelope struct {
	Tasks []model.Task `json:"tasks"`
}

func createOne(t *testing.T, h *handler.TaskHandler, userID, body string) model.Task {
	t.Helper()
	w := doTaskRequest(h, http.MethodPost, "/api/v1/tasks", body, userID)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var resp taskEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return resp.Task
}

func TestTaskHandler_CreateAndList(t *testing.T) {
	h := newTaskHandler()

	created := createOne(t, h, "7", `{"title":"Buy groceries","description":"Milk","status":"todo","priority":"high"}`)
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("expected createdAt == updatedAt on creation")
	}

	w := doTaskRequest(h, http.MethodGet, "/api/v1/tasks", "", "7")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp tasksEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(resp.Tasks) != 1 || resp.Tasks[0].Title != "Buy groceries" {
		t.Errorf("unexpected list: %+v", resp.Tasks)
	}
}

func TestTaskHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":""}`},
		{"invalid status", `{"title":"x","status":"done"}`},
		{"invalid json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTaskHandler()
			w := doTaskRequest(h, http.MethodPost, "/api/v1/tasks", tt.body, "7")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	h := newTaskHandler()
	created := createOne(t, h, "7", `{"title":"Original","description":"keep","priority":"low"}`)

	w := doTaskRequest(h, http.MethodPut, "/api/v1/tasks/"+created.ID, `{"status":"completed"}`, "7")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp taskEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Task.Status != model.TaskStatusCompleted {
		t.Errorf("expected completed, got %q", resp.Task.Status)
	}
	if resp.Task.Title != "Original" || resp.Task.Description != "keep" {
		t.Error("partial update touched other fields")
	}
}

func TestTaskHandler_UpdateMissing(t *testing.T) {
	h := newTaskHandler()

	w := doTaskRequest(h, http.MethodPut, "/api/v1/tasks/nope", `{"status":"completed"}`, "7")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	resp := decodeError(t, w)
	if resp.Error.Message != "Task not found" {
		t.Errorf("expected task-not-found message, got %q", resp.Error.Message)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	h := newTaskHandler()
	created := createOne(t, h, "7", `{"title":"Remove me"}`)

	w := doTaskRequest(h, http.MethodDelete, "/api/v1/tasks/"+created.ID, "", "7")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doTaskRequest(h, http.MethodDelete, "/api/v1/tasks/"+created.ID, "", "7")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Code)
	}
}

func TestTaskHandler_UserIsolation(t *testing.T) {
	h := newTaskHandler()
	created := createOne(t, h, "userA", `{"title":"A's task"}`)

	// User B cannot see, update or delete A's task.
	w := doTaskRequest(h, http.MethodGet, "/api/v1/tasks", "", "userB")
	var resp tasksEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(resp.Tasks) != 0 {
		t.Errorf("user B sees %d of user A's tasks", len(resp.Tasks))
	}

	if w := doTaskRequest(h, http.MethodPut, "/api/v1/tasks/"+created.ID, `{"title":"hijack"}`, "userB"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user update, got %d", w.Code)
	}
	if w := doTaskRequest(h, http.MethodDelete, "/api/v1/tasks/"+created.ID, "", "userB"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user delete, got %d", w.Code)
	}
}

func TestTaskHandler_MethodNotAllowed(t *testing.T) {
	h := newTaskHandler()

	if w := doTaskRequest(h, http.MethodPatch, "/api/v1/tasks", "", "7"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 on collection, got %d", w.Code)
	}
	if w := doTaskRequest(h, http.MethodPost, "/api/v1/tasks/some-id", "", "7"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 on item, got %d", w.Code)
	}
}
