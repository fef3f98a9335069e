package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pomodoro-tracker/internal/repository"
	"pomodoro-tracker/internal/service"
)

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (s *Server) handleListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		filter.CategoryID = uint(id)
	}

	tasks, err := s.services.Tasks.List(c.Request().Context(), currentUser(c), filter)
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, newTaskResponse(&tasks[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.CreateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Priority:           req.Priority,
		EstimatedPomodoros: req.EstimatedPomodoros,
		CategoryID:         req.CategoryID,
		TagIDs:             req.TagIDs,
	}
	if req.DueDate != nil {
		input.DueDate = &req.DueDate.Time
	}

	task, err := s.services.Tasks.Create(c.Request().Context(), currentUser(c), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) handleGetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := s.services.Tasks.Get(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.UpdateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Priority:           req.Priority,
		EstimatedPomodoros: req.EstimatedPomodoros,
		CompletedPomodoros: req.CompletedPomodoros,
		CategoryID:         req.CategoryID,
	}
	if req.DueDate != nil {
		input.DueDate = &req.DueDate.Time
	}
	if req.TagIDs != nil {
		ids := *req.TagIDs
		if ids == nil {
			ids = []uint{}
		}
		input.TagIDs = ids
	}

	task, err := s.services.Tasks.Update(c.Request().Context(), currentUser(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Tasks.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleCompleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Tasks.Complete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ---- categories ----

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.services.Categories.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	resp := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, newCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	category, err := s.services.Categories.Create(c.Request().Context(), currentUser(c), service.CategoryInput{
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCategoryResponse(category))
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	category, err := s.services.Categories.Update(c.Request().Context(), currentUser(c), id, service.CategoryInput{
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCategoryResponse(category))
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Categories.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ---- tags ----

func (s *Server) handleListTags(c echo.Context) error {
	tags, err := s.services.Tags.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	resp := make([]tagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, newTagResponse(&tags[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateTag(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	tag, err := s.services.Tags.Create(c.Request().Context(), currentUser(c), service.TagInput{
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

func (s *Server) handleUpdateTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	tag, err := s.services.Tags.Update(c.Request().Context(), currentUser(c), id, service.TagInput{
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

func (s *Server) handleDeleteTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Tags.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
