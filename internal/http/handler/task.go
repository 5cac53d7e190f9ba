package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/service"
)

// TaskHandler routes /api/v1/tasks and /api/v1/tasks/{id}.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.Trim(path, "/")

	if path != "" {
		switch r.Method {
		case http.MethodPut:
			h.handleUpdate(w, r, path)
		case http.MethodDelete:
			h.handleDelete(w, r, path)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.List(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handleTaskError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.svc.Create(r.Context(), middleware.GetUserID(r), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		Priority:    model.TaskPriority(req.Priority),
	})
	if err != nil {
		handleTaskError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"task": task})
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID string) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		s := model.TaskStatus(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := model.TaskPriority(*req.Priority)
		input.Priority = &p
	}

	task, err := h.svc.Update(r.Context(), middleware.GetUserID(r), taskID, input)
	if err != nil {
		handleTaskError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID string) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r), taskID); err != nil {
		handleTaskError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func handleTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		slog.Error("task internal error", "error", err.Error())
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
