// Package web exposes the service over HTTP. It is a thin adapter: request
// binding, token middleware and status-code mapping live here, everything
// else is delegated to the services package.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskkeeper/internal/logging"
	"taskkeeper/internal/server/auth"
	"taskkeeper/internal/server/models"
	"taskkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	issuer  *auth.TokenIssuer
	users   *services.UserService
	todos   *services.TodoService
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, issuer *auth.TokenIssuer, us *services.UserService, ts *services.TodoService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "web_server"),
		issuer:  issuer,
		users:   us,
		todos:   ts,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s.routes(e)
	s.echo = e
	return s
}

func (s *Server) routes(e *echo.Echo) {
	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)

	session := e.Group("/auth", s.requireAccessToken)
	session.POST("/refresh-token", s.refreshToken)
	session.POST("/validate-token", s.validateToken)

	todos := e.Group("/todos", s.requireAccessToken, requireRole(models.RoleUser, models.RoleAdmin))
	todos.GET("", s.listTodos)
	todos.POST("", s.createTodo)
	todos.GET("/admin/search", s.adminSearchTodos, requireRole(models.RoleAdmin))
	todos.GET("/:id", s.getTodoByID)
	todos.PUT("/:id", s.updateTodo)
	todos.PUT("/:id/complete", s.completeTodo)
	todos.DELETE("/:id", s.deleteTodo)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
