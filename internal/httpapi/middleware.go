package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// requireAuth verifies the Authorization bearer token and stashes the
// user id in the request context. Verification fails closed.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		userID, err := s.tokens.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// currentUser returns the authenticated user id set by requireAuth.
func currentUser(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
