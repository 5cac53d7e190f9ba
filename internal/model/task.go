package model

import (
	"sort"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusCompleted
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// Task belongs to exactly one user; ownership is by storage partition, so the
// record itself carries no user field.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Filter is a client-only view restriction over a task list.
type Filter string

const FilterAll Filter = "all"

func (f Filter) IsValid() bool {
	return f == FilterAll || TaskStatus(f).IsValid()
}

// Matches reports whether a task with the given status is visible under f.
func (f Filter) Matches(s TaskStatus) bool {
	return f == FilterAll || TaskStatus(f) == s
}

// SortTasksByCreatedAt orders tasks newest-first, in place. The sort is
// stable so tasks created within the same instant keep their relative order.
func SortTasksByCreatedAt(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
