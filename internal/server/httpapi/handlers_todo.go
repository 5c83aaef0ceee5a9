package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bimobaru/kanban-api/internal/server/models"
)

type createTodoRequest struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Order   models.Order `json:"order"`
}

// updateTodoRequest uses pointers so absent fields are distinguishable
// from explicit empty values. A status field in the body is ignored:
// transitions go through the dedicated status route only.
type updateTodoRequest struct {
	Title   *string       `json:"title"`
	Content *string       `json:"content"`
	Order   *models.Order `json:"order"`
}

type updateStatusRequest struct {
	Status models.Status `json:"status"`
}

func (s *Server) listTodos(c echo.Context) error {
	list, err := s.todos.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Todos fetched successfully",
		"todos":   list,
	})
}

func (s *Server) createTodo(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	todo, err := s.todos.Create(c.Request().Context(), callerID(c), req.Title, req.Content, req.Order)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, todo)
}

func (s *Server) updateTodo(c echo.Context) error {
	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	todo, err := s.todos.Update(c.Request().Context(), callerID(c), c.Param("id"), req.Title, req.Content, req.Order)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

func (s *Server) updateTodoStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	todo, err := s.todos.UpdateStatus(c.Request().Context(), callerID(c), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

func (s *Server) deleteTodo(c echo.Context) error {
	if err := s.todos.Delete(c.Request().Context(), callerID(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func callerID(c echo.Context) string {
	if user := UserFromContext(c); user != nil {
		return user.ID
	}
	return ""
}
