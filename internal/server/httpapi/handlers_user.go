package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bimobaru/kanban-api/internal/server/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	// Mirror the tokens into cookies for browser session continuity.
	c.SetCookie(&http.Cookie{Name: auth.TokenKindAccess, Value: pair.AccessToken, Path: "/"})
	c.SetCookie(&http.Cookie{Name: auth.TokenKindRefresh, Value: pair.RefreshToken, Path: "/"})

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "User logged in successfully",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) refresh(c echo.Context) error {
	user := UserFromContext(c)

	token, err := s.users.Refresh(c.Request().Context(), user)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{Name: auth.TokenKindAccess, Value: token, Path: "/"})

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Token refreshed successfully",
		"access_token": token,
	})
}

func (s *Server) getUsers(c echo.Context) error {
	list, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Users retrieved successfully",
		"users":   list,
	})
}
