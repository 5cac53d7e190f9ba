package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

// tasksKey partitions task collections by user id. Ownership is the
// partition itself; task records carry no user field.
func tasksKey(userID string) string {
	return "mockTasks_" + userID
}

// KVTaskRepository keeps one task collection per user in the durable store,
// reading and rewriting the whole collection on every mutation.
type KVTaskRepository struct {
	store    storage.Store
	seedDemo bool
}

func NewKVTask(store storage.Store, seedDemo bool) *KVTaskRepository {
	return &KVTaskRepository{store: store, seedDemo: seedDemo}
}

func (r *KVTaskRepository) load(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.store.Get(ctx, tasksKey(userID), &tasks)
	if err == nil {
		return tasks, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load tasks for user %s: %w", userID, err)
	}

	// Lazy initialization: the demo user gets example tasks, everyone else
	// starts empty.
	if r.seedDemo && userID == DemoUserID {
		tasks = demoTasks(time.Now().UTC())
	} else {
		tasks = []model.Task{}
	}
	if err := r.store.Put(ctx, tasksKey(userID), tasks); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks for user %s: %w", userID, err)
	}
	return tasks, nil
}

func (r *KVTaskRepository) save(ctx context.Context, userID string, tasks []model.Task) error {
	if err := r.store.Put(ctx, tasksKey(userID), tasks); err != nil {
		return fmt.Errorf("failed to persist tasks for user %s: %w", userID, err)
	}
	return nil
}

func (r *KVTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	return r.load(ctx, userID)
}

func (r *KVTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	tasks, err := r.load(ctx, userID)
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (r *KVTaskRepository) Create(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	tasks, err := r.load(ctx, userID)
	if err != nil {
		return model.Task{}, err
	}

	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := r.save(ctx, userID, append(tasks, task)); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (r *KVTaskRepository) Update(ctx context.Context, userID string, task model.Task) (model.Task, error) {
	tasks, err := r.load(ctx, userID)
	if err != nil {
		return model.Task{}, err
	}

	for i, t := range tasks {
		if t.ID != task.ID {
			continue
		}
		task.CreatedAt = t.CreatedAt
		task.UpdatedAt = time.Now().UTC()
		tasks[i] = task
		if err := r.save(ctx, userID, tasks); err != nil {
			return model.Task{}, err
		}
		return task, nil
	}
	return model.Task{}, ErrNotFound
}

func (r *KVTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	tasks, err := r.load(ctx, userID)
	if err != nil {
		return err
	}

	remaining := make([]model.Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		remaining = append(remaining, t)
	}
	if !found {
		return ErrNotFound
	}
	return r.save(ctx, userID, remaining)
}

var _ TaskRepository = (*KVTaskRepository)(nil)
