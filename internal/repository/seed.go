package repository

import (
	"time"

	"github.com/dayoung-lee/taskboard/internal/model"
)

// DemoUserID is the built-in demo account. Its task collection is seeded
// with example tasks on first access; every other user starts empty.
const DemoUserID = "1"

func demoUsers() []model.User {
	return []model.User{
		{
			ID:       DemoUserID,
			Username: "test",
			Email:    "test@example.com",
			Password: "test123",
		},
	}
}

func demoTasks(now time.Time) []model.Task {
	return []model.Task{
		{
			ID:          "1",
			Title:       "Setup Project",
			Description: "Initialize the task management service and its storage layer",
			Status:      model.TaskStatusCompleted,
			Priority:    model.TaskPriorityHigh,
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID:          "2",
			Title:       "Implement Authentication",
			Description: "Add registration, login and bearer-token resolution",
			Status:      model.TaskStatusCompleted,
			Priority:    model.TaskPriorityHigh,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "Build Task Dashboard",
			Description: "Wire the task list and CRUD operations end to end",
			Status:      model.TaskStatusInProgress,
			Priority:    model.TaskPriorityHigh,
			CreatedAt:   now.Add(-time.Hour),
			UpdatedAt:   now.Add(-time.Hour),
		},
		{
			ID:          "4",
			Title:       "Add Dark Mode",
			Description: "Persist the theme preference across restarts",
			Status:      model.TaskStatusTodo,
			Priority:    model.TaskPriorityMedium,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "5",
			Title:       "Write Documentation",
			Description: "Create a README with setup instructions",
			Status:      model.TaskStatusTodo,
			Priority:    model.TaskPriorityLow,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
