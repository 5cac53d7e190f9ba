package http

import (
	"net/http"

	"github.com/dayoung-lee/taskboard/internal/http/handler"
	"github.com/dayoung-lee/taskboard/internal/service"
)

func NewRouter(authSvc *service.AuthService, taskSvc *service.TaskService) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler())

	authHandler := handler.NewAuthHandler(authSvc)
	mux.Handle("/api/v1/auth/", authHandler)

	taskHandler := handler.NewTaskHandler(taskSvc)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	return mux
}
