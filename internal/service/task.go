package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/repository"
)

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    model.TaskPriority
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	if input.Title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = model.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = model.TaskPriorityMedium
	}
	if !input.Status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, input.Status)
	}
	if !input.Priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, input.Priority)
	}

	created, err := s.repo.Create(ctx, userID, model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (model.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return model.Task{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return model.Task{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *input.Status)
		}
		existing.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *input.Priority)
		}
		existing.Priority = *input.Priority
	}

	updated, err := s.repo.Update(ctx, userID, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List returns the user's full collection, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	model.SortTasksByCreatedAt(tasks)
	return tasks, nil
}
