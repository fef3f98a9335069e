package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pomodoro-tracker/internal/service"
)

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.services.Auth.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		UserID:      result.User.ID,
		Username:    result.User.Username,
		Email:       result.User.Email,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.services.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		UserID:      result.User.ID,
		Username:    result.User.Username,
		Email:       result.User.Email,
	})
}

// handleGetUser returns the caller's profile, or another user's when an
// explicit user_id query parameter is given.
func (s *Server) handleGetUser(c echo.Context) error {
	userID := currentUser(c)
	if raw := c.QueryParam("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		userID = uint(parsed)
	}

	user, err := s.services.Auth.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) handleGetSettings(c echo.Context) error {
	settings, err := s.services.Auth.GetSettings(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSettingsResponse(settings))
}

func (s *Server) handleUpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	settings, err := s.services.Auth.UpdateSettings(c.Request().Context(), currentUser(c), service.SettingsInput{
		WorkDuration:         req.WorkDuration,
		ShortBreakDuration:   req.ShortBreakDuration,
		LongBreakDuration:    req.LongBreakDuration,
		LongBreakInterval:    req.LongBreakInterval,
		NotificationsEnabled: req.NotificationsEnabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSettingsResponse(settings))
}
