package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/server/auth"
	"github.com/bimobaru/kanban-api/internal/server/models"
)

// userContextKey stores the resolved identity on the echo context.
const userContextKey = "kanban.user"

// requireAccess rejects requests that lack a valid access token and stores
// the decoded identity on the context for downstream handlers.
func (s *Server) requireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return s.requireKind(next, auth.TokenKindAccess)
}

// requireRefresh is identical to requireAccess but demands a refresh token.
func (s *Server) requireRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return s.requireKind(next, auth.TokenKindRefresh)
}

func (s *Server) requireKind(next echo.HandlerFunc, kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			token = cookieToken(c, kind)
		}
		if token == "" {
			return common.ErrMissingToken
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			return err
		}
		if claims.Kind != kind {
			return common.ErrWrongTokenKind
		}

		c.Set(userContextKey, &claims.User)
		return next(c)
	}
}

// UserFromContext returns the identity attached by the guard, or nil when
// the request was not guarded.
func UserFromContext(c echo.Context) *models.PublicUser {
	user, _ := c.Get(userContextKey).(*models.PublicUser)
	return user
}

// bearerToken strips the "Bearer " scheme, tolerating an absent header as
// an empty string.
func bearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// cookieToken falls back to the token cookie set at login, so browser
// sessions survive without the Authorization header. The cookie is named
// after the token kind.
func cookieToken(c echo.Context, kind string) string {
	cookie, err := c.Cookie(kind)
	if err != nil {
		return ""
	}
	return cookie.Value
}
