package service

import (
	"context"
	"sort"
	"time"

	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

const (
	defaultDashboardDays = 30
	uncategorizedName    = "Uncategorized"
	uncategorizedColor   = "#94a3b8"
	dayLayout            = "2006-01-02"
)

// TimeSeriesPoint is one calendar day in an aligned series.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// CategoryPoint is one slice of the category distribution.
type CategoryPoint struct {
	CategoryID   *uint  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Value        int    `json:"value"`
	Color        string `json:"color"`
}

// PriorityPoint is one slice of the priority distribution.
type PriorityPoint struct {
	Priority string `json:"priority"`
	Value    int    `json:"value"`
}

// ProductivityStats summarizes the whole window.
type ProductivityStats struct {
	TotalPomodoros int     `json:"total_pomodoros"`
	CompletedTasks int     `json:"completed_tasks"`
	FocusHours     float64 `json:"focus_hours"`
	CompletionRate float64 `json:"completion_rate"`
	DailyAverage   float64 `json:"daily_average"`
	Streak         int     `json:"streak"`
}

// DailyStat is one day with recorded activity; idle days are omitted.
type DailyStat struct {
	Date           string `json:"date"`
	Pomodoros      int    `json:"pomodoros"`
	TasksCompleted int    `json:"tasks_completed"`
	FocusMinutes   int    `json:"focus_minutes"`
}

// Dashboard is the full analytics payload for a date window.
type Dashboard struct {
	PomodoroTimeSeries       []TimeSeriesPoint `json:"pomodoro_time_series"`
	TaskCompletionTimeSeries []TimeSeriesPoint `json:"task_completion_time_series"`
	CategoryDistribution     []CategoryPoint   `json:"category_distribution"`
	PriorityDistribution     []PriorityPoint   `json:"priority_distribution"`
	ProductivityStats        ProductivityStats `json:"productivity_stats"`
	DailyStats               []DailyStat       `json:"daily_stats"`
}

// TaskAnalytics reports the focus history of a single task.
type TaskAnalytics struct {
	TaskID               uint              `json:"task_id"`
	TaskTitle            string            `json:"task_title"`
	Status               string            `json:"status"`
	Priority             string            `json:"priority"`
	EstimatedPomodoros   int               `json:"estimated_pomodoros"`
	CompletedPomodoros   int               `json:"completed_pomodoros"`
	TotalPomodoros       int               `json:"total_pomodoros"`
	TotalFocusMinutes    int               `json:"total_focus_minutes"`
	DailyAverage         float64           `json:"daily_average"`
	CompletionPercentage float64           `json:"completion_percentage"`
	PomodoroTimeSeries   []TimeSeriesPoint `json:"pomodoro_time_series"`
}

// AnalyticsService is a pure read-side aggregator over task and session
// history. It persists nothing of its own.
type AnalyticsService struct {
	tasks    *repository.TaskRepository
	sessions *repository.SessionRepository
	loc      *time.Location
	now      func() time.Time
}

func NewAnalyticsService(tasks *repository.TaskRepository, sessions *repository.SessionRepository, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{tasks: tasks, sessions: sessions, loc: loc, now: time.Now}
}

// Dashboard aggregates the trailing window of the given length, ending
// today. The two time series contain exactly one point per calendar day.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uint, days int) (*Dashboard, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	end := s.today()
	start := end.AddDate(0, 0, -(days - 1))
	return s.compute(ctx, userID, start, end, days)
}

// DateRange aggregates an explicit inclusive date range.
func (s *AnalyticsService) DateRange(ctx context.Context, userID uint, startDate, endDate time.Time) (*Dashboard, error) {
	start := s.midnight(startDate)
	end := s.midnight(endDate)
	if end.Before(start) {
		return nil, validationf("end_date must not be before start_date")
	}
	return s.compute(ctx, userID, start, end, spanDays(start, end))
}

func (s *AnalyticsService) compute(ctx context.Context, userID uint, start, end time.Time, days int) (*Dashboard, error) {
	windowEnd := end.AddDate(0, 0, 1)

	sessions, err := s.sessions.CompletedBetween(ctx, userID, start, windowEnd)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.CreatedBetween(ctx, userID, start, windowEnd)
	if err != nil {
		return nil, err
	}

	workByDay := make(map[string]int)
	focusSecondsByDay := make(map[string]int)
	totalPomodoros := 0
	totalFocusSeconds := 0
	for _, session := range sessions {
		if session.Type != model.SessionWork {
			continue
		}
		day := session.StartTime.In(s.loc).Format(dayLayout)
		workByDay[day]++
		focusSecondsByDay[day] += session.Duration
		totalPomodoros++
		totalFocusSeconds += session.Duration
	}

	tasksDoneByDay := make(map[string]int)
	completedTasks := 0
	categoryCounts := make(map[uint]*CategoryPoint)
	var uncategorized int
	priorityCounts := make(map[string]int)
	for i := range tasks {
		task := &tasks[i]
		if task.Status == model.StatusCompleted {
			completedTasks++
			day := task.UpdatedAt.In(s.loc).Format(dayLayout)
			tasksDoneByDay[day]++
		}

		priorityCounts[task.Priority]++

		if task.CategoryID == nil {
			uncategorized++
			continue
		}
		point, ok := categoryCounts[*task.CategoryID]
		if !ok {
			name, color := uncategorizedName, uncategorizedColor
			if task.Category != nil {
				name, color = task.Category.Name, task.Category.ColorCode
			}
			id := *task.CategoryID
			point = &CategoryPoint{CategoryID: &id, CategoryName: name, Color: color}
			categoryCounts[*task.CategoryID] = point
		}
		point.Value++
	}

	categories := make([]CategoryPoint, 0, len(categoryCounts)+1)
	for _, point := range categoryCounts {
		categories = append(categories, *point)
	}
	if uncategorized > 0 {
		categories = append(categories, CategoryPoint{
			CategoryName: uncategorizedName,
			Value:        uncategorized,
			Color:        uncategorizedColor,
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Value > categories[j].Value
	})

	priorities := make([]PriorityPoint, 0, 3)
	for _, priority := range []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if count, ok := priorityCounts[priority]; ok {
			priorities = append(priorities, PriorityPoint{Priority: priority, Value: count})
		}
	}

	stats := ProductivityStats{
		TotalPomodoros: totalPomodoros,
		CompletedTasks: completedTasks,
		FocusHours:     round1(float64(totalFocusSeconds) / 3600),
		DailyAverage:   round1(float64(totalPomodoros) / float64(days)),
	}
	if len(tasks) > 0 {
		stats.CompletionRate = round2(float64(completedTasks) / float64(len(tasks)))
	}

	// Streak: consecutive days with a completed work session, counted
	// backward from the window's end date.
	for d := end; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if workByDay[d.Format(dayLayout)] == 0 {
			break
		}
		stats.Streak++
	}

	pomodoroSeries := make([]TimeSeriesPoint, 0, days)
	taskSeries := make([]TimeSeriesPoint, 0, days)
	daily := []DailyStat{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(dayLayout)
		pomodoros := workByDay[day]
		tasksDone := tasksDoneByDay[day]

		pomodoroSeries = append(pomodoroSeries, TimeSeriesPoint{Date: day, Value: pomodoros})
		taskSeries = append(taskSeries, TimeSeriesPoint{Date: day, Value: tasksDone})

		if pomodoros > 0 || tasksDone > 0 {
			daily = append(daily, DailyStat{
				Date:           day,
				Pomodoros:      pomodoros,
				TasksCompleted: tasksDone,
				FocusMinutes:   focusSecondsByDay[day] / 60,
			})
		}
	}

	return &Dashboard{
		PomodoroTimeSeries:       pomodoroSeries,
		TaskCompletionTimeSeries: taskSeries,
		CategoryDistribution:     categories,
		PriorityDistribution:     priorities,
		ProductivityStats:        stats,
		DailyStats:               daily,
	}, nil
}

// TaskAnalytics reports completed work sessions for one task.
func (s *AnalyticsService) TaskAnalytics(ctx context.Context, userID, taskID uint) (*TaskAnalytics, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err, "task")
	}

	sessions, err := s.sessions.CompletedWorkByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	result := &TaskAnalytics{
		TaskID:             task.ID,
		TaskTitle:          task.Title,
		Status:             task.Status,
		Priority:           task.Priority,
		EstimatedPomodoros: task.EstimatedPomodoros,
		CompletedPomodoros: task.CompletedPomodoros,
		TotalPomodoros:     len(sessions),
		PomodoroTimeSeries: []TimeSeriesPoint{},
	}

	totalSeconds := 0
	byDay := make(map[string]int)
	var dayOrder []string
	for _, session := range sessions {
		totalSeconds += session.Duration
		day := session.StartTime.In(s.loc).Format(dayLayout)
		if _, ok := byDay[day]; !ok {
			dayOrder = append(dayOrder, day)
		}
		byDay[day]++
	}
	result.TotalFocusMinutes = totalSeconds / 60

	for _, day := range dayOrder {
		result.PomodoroTimeSeries = append(result.PomodoroTimeSeries, TimeSeriesPoint{Date: day, Value: byDay[day]})
	}

	if len(sessions) > 0 {
		first := s.midnight(sessions[0].StartTime)
		last := s.midnight(sessions[len(sessions)-1].StartTime)
		result.DailyAverage = round1(float64(len(sessions)) / float64(spanDays(first, last)))
	}

	if task.EstimatedPomodoros > 0 {
		result.CompletionPercentage = round1(float64(task.CompletedPomodoros) / float64(task.EstimatedPomodoros) * 100)
	}

	return result, nil
}

// spanDays counts inclusive calendar days between two midnights by
// iteration; DST-shortened days still count as full days.
func spanDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func (s *AnalyticsService) today() time.Time {
	return s.midnight(s.now())
}

func (s *AnalyticsService) midnight(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}
