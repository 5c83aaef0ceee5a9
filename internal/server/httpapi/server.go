// Package httpapi exposes the REST surface of the kanban board: account
// routes, todo lifecycle routes, and the token guard middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/logging"
	"github.com/bimobaru/kanban-api/internal/server/config"
	"github.com/bimobaru/kanban-api/internal/server/models"
	"github.com/bimobaru/kanban-api/internal/server/services"
)

// UserService is the account surface consumed by the HTTP layer.
type UserService interface {
	Register(ctx context.Context, username, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, user *models.PublicUser) (string, error)
	ListUsers(ctx context.Context) ([]*models.PublicUser, error)
}

// TodoService is the todo lifecycle surface consumed by the HTTP layer.
type TodoService interface {
	List(ctx context.Context) ([]*models.Todo, error)
	Create(ctx context.Context, callerID, title, content string, order models.Order) (*models.Todo, error)
	Update(ctx context.Context, callerID, id string, title, content *string, order *models.Order) (*models.Todo, error)
	UpdateStatus(ctx context.Context, callerID, id string, status models.Status) (*models.Todo, error)
	Delete(ctx context.Context, callerID, id string) error
}

// Server wires the Echo instance, the services, and the token guard.
type Server struct {
	echo      *echo.Echo
	logger    logging.Logger
	users     UserService
	todos     TodoService
	jwtSecret []byte
	addr      string
}

// errorEnvelope is the uniform failure body: the client shows Message
// verbatim in a toast.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
}

// NewServer builds the Echo application with CORS, routes, and the error
// envelope handler.
func NewServer(cfg *config.Config, logger logging.Logger, users UserService, todos TodoService) *Server {
	s := &Server{
		logger:    logger,
		users:     users,
		todos:     todos,
		jwtSecret: []byte(cfg.SecretKey),
		addr:      cfg.EndpointAddrHTTP,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSAllowedOrigin},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: cfg.CORSAllowedOrigin != "*",
	}))
	e.HTTPErrorHandler = s.handleError

	s.echo = e
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	users := api.Group("/users")
	users.POST("/register", s.register)
	users.POST("/login", s.login)
	users.POST("/refresh", s.refresh, s.requireRefresh)
	users.GET("/getUsers", s.getUsers)

	todos := api.Group("/todos")
	todos.GET("", s.listTodos)
	todos.POST("", s.createTodo, s.requireAccess)
	todos.PUT("/:id", s.updateTodo, s.requireAccess)
	todos.PATCH("/status/:id", s.updateTodoStatus, s.requireAccess)
	todos.DELETE("/:id", s.deleteTodo, s.requireAccess)
}

// handleError maps domain failures onto the error envelope. Handled domain
// errors collapse to 400; credential-layer failures are 401; anything
// unrecognized is a 500.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusBadRequest
	message := err.Error()

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	case errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrWrongTokenKind),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorInternal):
		status = http.StatusInternalServerError
		s.logger.Error(c.Request().Context(), "internal error", "path", c.Path(), "err", err.Error())
	}

	if err := c.JSON(status, errorEnvelope{Message: message, Error: true}); err != nil {
		s.logger.Error(c.Request().Context(), "error response write failed", "err", err.Error())
	}
}

// Run starts the HTTP listener and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.echo.Start(s.addr)
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
