package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, authSvc *service.AuthService, taskSvc *service.TaskService, auth *middleware.Auth) *Server {
	router := NewRouter(authSvc, taskSvc)

	// Middleware chain: recovery -> logging -> auth -> router
	chain := middleware.Recovery(logger)(middleware.Logging(logger)(auth.Middleware(router)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the full middleware chain, mainly for tests that mount the
// server inside httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
