package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"pomodoro-tracker/internal/model"
)

const dateLayout = "2006-01-02"

// Date is a calendar date marshaled as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Timestamp accepts RFC 3339 timestamps and, for clients that omit the
// zone, bare "2006-01-02T15:04:05" literals. Naive values are later
// re-anchored in the server's configured zone.
type Timestamp struct {
	Time  time.Time
	Naive bool
}

const naiveLayout = "2006-01-02T15:04:05"

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	t, err := time.Parse(naiveLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	ts.Time = t
	ts.Naive = true
	return nil
}

// In resolves the timestamp in loc, rebuilding naive values there.
func (ts Timestamp) In(loc *time.Location) time.Time {
	if !ts.Naive {
		return ts.Time
	}
	t := ts.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// IsZero reports whether the timestamp was absent from the request.
func (ts Timestamp) IsZero() bool {
	return ts.Time.IsZero()
}

// ---- requests ----

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type settingsRequest struct {
	WorkDuration         *int  `json:"work_duration"`
	ShortBreakDuration   *int  `json:"short_break_duration"`
	LongBreakDuration    *int  `json:"long_break_duration"`
	LongBreakInterval    *int  `json:"long_break_interval"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

type categoryRequest struct {
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
}

type tagRequest struct {
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
}

type createTaskRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	Priority           string `json:"priority"`
	DueDate            *Date  `json:"due_date"`
	EstimatedPomodoros int    `json:"estimated_pomodoros"`
	CategoryID         *uint  `json:"category_id"`
	TagIDs             []uint `json:"tag_ids"`
}

type updateTaskRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Status             *string `json:"status"`
	Priority           *string `json:"priority"`
	DueDate            *Date   `json:"due_date"`
	EstimatedPomodoros *int    `json:"estimated_pomodoros"`
	CompletedPomodoros *int    `json:"completed_pomodoros"`
	CategoryID         *uint   `json:"category_id"`
	TagIDs             *[]uint `json:"tag_ids"`
}

type startSessionRequest struct {
	TaskID   *uint  `json:"task_id"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
}

type completeSessionRequest struct {
	EndTime     Timestamp `json:"end_time"`
	IsCompleted bool      `json:"is_completed"`
}

type dateRangeRequest struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`
}

// ---- responses ----

type errorResponse struct {
	Detail string `json:"detail"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

type userResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

type settingsResponse struct {
	WorkDuration         int  `json:"work_duration"`
	ShortBreakDuration   int  `json:"short_break_duration"`
	LongBreakDuration    int  `json:"long_break_duration"`
	LongBreakInterval    int  `json:"long_break_interval"`
	NotificationsEnabled bool `json:"notifications_enabled"`
}

type categoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
}

type tagResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
}

type taskResponse struct {
	ID                 uint          `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Status             string        `json:"status"`
	Priority           string        `json:"priority"`
	DueDate            *Date         `json:"due_date"`
	EstimatedPomodoros int           `json:"estimated_pomodoros"`
	CompletedPomodoros int           `json:"completed_pomodoros"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CategoryID         *uint         `json:"category_id"`
	CategoryName       *string       `json:"category_name"`
	CategoryColor      *string       `json:"category_color"`
	Tags               []tagResponse `json:"tags"`
}

type sessionResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	TaskID      *uint      `json:"task_id"`
	TaskTitle   *string    `json:"task_title"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    int        `json:"duration"`
	Type        string     `json:"type"`
	IsCompleted bool       `json:"is_completed"`
}

func newUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		DateJoined: user.CreatedAt,
	}
}

func newSettingsResponse(settings *model.UserSetting) settingsResponse {
	return settingsResponse{
		WorkDuration:         settings.WorkDuration,
		ShortBreakDuration:   settings.ShortBreakDuration,
		LongBreakDuration:    settings.LongBreakDuration,
		LongBreakInterval:    settings.LongBreakInterval,
		NotificationsEnabled: settings.NotificationsEnabled,
	}
}

func newCategoryResponse(category *model.Category) categoryResponse {
	return categoryResponse{ID: category.ID, Name: category.Name, ColorCode: category.ColorCode}
}

func newTagResponse(tag *model.Tag) tagResponse {
	return tagResponse{ID: tag.ID, Name: tag.Name, ColorCode: tag.ColorCode}
}

func newTaskResponse(task *model.Task) taskResponse {
	resp := taskResponse{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Status:             task.Status,
		Priority:           task.Priority,
		EstimatedPomodoros: task.EstimatedPomodoros,
		CompletedPomodoros: task.CompletedPomodoros,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
		Tags:               make([]tagResponse, 0, len(task.Tags)),
	}
	if task.DueDate != nil {
		resp.DueDate = &Date{Time: *task.DueDate}
	}
	if task.Category != nil {
		resp.CategoryID = &task.Category.ID
		resp.CategoryName = &task.Category.Name
		resp.CategoryColor = &task.Category.ColorCode
	}
	for i := range task.Tags {
		resp.Tags = append(resp.Tags, newTagResponse(&task.Tags[i]))
	}
	return resp
}

func newSessionResponse(session *model.PomodoroSession) sessionResponse {
	resp := sessionResponse{
		ID:          session.ID,
		UserID:      session.UserID,
		TaskID:      session.TaskID,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		Duration:    session.Duration,
		Type:        session.Type,
		IsCompleted: session.IsCompleted,
	}
	if session.Task != nil {
		resp.TaskTitle = &session.Task.Title
	}
	return resp
}
