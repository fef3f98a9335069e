package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleDashboard(c echo.Context) error {
	days, err := queryInt(c, "days")
	if err != nil {
		return err
	}

	dashboard, err := s.services.Analytics.Dashboard(c.Request().Context(), currentUser(c), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

func (s *Server) handleDateRange(c echo.Context) error {
	var req dateRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	dashboard, err := s.services.Analytics.DateRange(c.Request().Context(), currentUser(c), req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

func (s *Server) handleTaskAnalytics(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	analytics, err := s.services.Analytics.TaskAnalytics(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analytics)
}
