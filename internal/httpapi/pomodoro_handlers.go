package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pomodoro-tracker/internal/service"
)

func (s *Server) handleStartSession(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.services.Pomodoro.Start(c.Request().Context(), currentUser(c), service.StartSessionInput{
		TaskID:   req.TaskID,
		Type:     req.Type,
		Duration: req.Duration,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleCompleteSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req completeSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.EndTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "end_time is required")
	}

	session, err := s.services.Pomodoro.Complete(c.Request().Context(), currentUser(c), id, req.EndTime.In(s.loc), req.IsCompleted)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleSessionHistory(c echo.Context) error {
	days, err := queryInt(c, "days")
	if err != nil {
		return err
	}

	var taskID *uint
	if raw := c.QueryParam("task_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid task_id")
		}
		id := uint(parsed)
		taskID = &id
	}

	sessions, err := s.services.Pomodoro.History(c.Request().Context(), currentUser(c), days, taskID)
	if err != nil {
		return err
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, newSessionResponse(&sessions[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSessionStats(c echo.Context) error {
	days, err := queryInt(c, "days")
	if err != nil {
		return err
	}

	stats, err := s.services.Pomodoro.Stats(c.Request().Context(), currentUser(c), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Pomodoro.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// queryInt parses an optional non-negative integer query parameter;
// absence yields zero so services can apply their defaults.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}
