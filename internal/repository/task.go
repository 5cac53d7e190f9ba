package repository

import (
	"context"

	"github.com/dayoung-lee/taskboard/internal/model"
)

type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	// Create assigns an id, stamps createdAt/updatedAt, and appends the task
	// to the user's collection.
	Create(ctx context.Context, userID string, task model.Task) (model.Task, error)
	// Update replaces the stored record matching task.ID and refreshes
	// updatedAt. Returns ErrNotFound when the id is absent.
	Update(ctx context.Context, userID string, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}
