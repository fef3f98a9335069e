package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pomodoro-tracker/internal/auth"
	"pomodoro-tracker/internal/service"
)

// errorHandler renders every failure as {"detail": <message>}. Service
// errors map onto 400/401/404; anything unrecognized is logged in full
// and masked behind a generic 500 so internals never reach clients.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail = fmt.Sprintf("%v", httpErr.Message)
	case service.IsValidation(err),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusBadRequest
		detail = err.Error()
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
		detail = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		detail = err.Error()
	default:
		s.logger.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	}

	if sendErr := c.JSON(status, errorResponse{Detail: detail}); sendErr != nil {
		s.logger.Error("write error response", zap.Error(sendErr))
	}
}
