package service

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

const (
	defaultHistoryDays = 7
	defaultStatsDays   = 30
)

// StartSessionInput carries the fields required to open a session.
type StartSessionInput struct {
	TaskID   *uint
	Type     string
	Duration int // seconds
}

// PomodoroStats summarizes a trailing window of sessions.
type PomodoroStats struct {
	TotalSessions        int     `json:"total_sessions"`
	TotalCompleted       int     `json:"total_completed"`
	TotalMinutes         int     `json:"total_minutes"`
	WorkSessions         int     `json:"work_sessions"`
	ShortBreakSessions   int     `json:"short_break_sessions"`
	LongBreakSessions    int     `json:"long_break_sessions"`
	CompletionRate       float64 `json:"completion_rate"`
	MostProductiveDay    *string `json:"most_productive_day"`
	MostFocusedTaskID    *uint   `json:"most_focused_task_id"`
	MostFocusedTaskTitle *string `json:"most_focused_task_title"`
}

// PomodoroService records the lifecycle of timed work and break
// intervals and keeps linked task counters consistent.
type PomodoroService struct {
	db       *gorm.DB
	sessions *repository.SessionRepository
	tasks    *repository.TaskRepository
	loc      *time.Location
}

func NewPomodoroService(db *gorm.DB, sessions *repository.SessionRepository, tasks *repository.TaskRepository, loc *time.Location) *PomodoroService {
	if loc == nil {
		loc = time.Local
	}
	return &PomodoroService{db: db, sessions: sessions, tasks: tasks, loc: loc}
}

// Start opens a new session at server time. An optional task reference
// is validated for ownership first.
func (s *PomodoroService) Start(ctx context.Context, userID uint, input StartSessionInput) (*model.PomodoroSession, error) {
	if !model.ValidSessionType(input.Type) {
		return nil, validationf("unknown session type %q", input.Type)
	}
	if input.Duration <= 0 {
		return nil, validationf("duration must be positive")
	}

	session := model.PomodoroSession{
		UserID:      userID,
		StartTime:   time.Now().In(s.loc),
		Duration:    input.Duration,
		Type:        input.Type,
		IsCompleted: false,
	}

	if input.TaskID != nil && *input.TaskID != 0 {
		task, err := s.tasks.FindByID(ctx, userID, *input.TaskID)
		if err != nil {
			return nil, notFound(err, "task")
		}
		session.TaskID = &task.ID
		session.Task = task
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Complete finishes a session. Completing a work session linked to a
// task bumps the task's completed-pomodoro counter exactly once; calling
// Complete again on an already-completed session is a no-op, so repeated
// requests cannot double-count.
func (s *PomodoroService) Complete(ctx context.Context, userID, sessionID uint, endTime time.Time, completed bool) (*model.PomodoroSession, error) {
	var session *model.PomodoroSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sessions := s.sessions.WithTx(tx)

		found, err := sessions.FindByID(ctx, userID, sessionID)
		if err != nil {
			return notFound(err, "session")
		}
		if found.IsCompleted {
			session = found
			return nil
		}

		end := endTime.In(s.loc)
		found.EndTime = &end
		found.IsCompleted = completed
		if err := sessions.Save(ctx, found); err != nil {
			return err
		}

		if completed && found.Type == model.SessionWork && found.TaskID != nil {
			tasks := s.tasks.WithTx(tx)
			task, err := tasks.FindByID(ctx, userID, *found.TaskID)
			if err != nil {
				return notFound(err, "task")
			}
			task.CompletedPomodoros++
			if err := tasks.Save(ctx, task); err != nil {
				return err
			}
			found.Task = task
		}

		session = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session. Deleting a completed work session linked to
// a task decrements the task's counter, floored at zero.
func (s *PomodoroService) Delete(ctx context.Context, userID, sessionID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		sessions := s.sessions.WithTx(tx)

		session, err := sessions.FindByID(ctx, userID, sessionID)
		if err != nil {
			return notFound(err, "session")
		}

		if session.IsCompleted && session.Type == model.SessionWork && session.TaskID != nil {
			tasks := s.tasks.WithTx(tx)
			task, err := tasks.FindByID(ctx, userID, *session.TaskID)
			if err == nil {
				if task.CompletedPomodoros > 0 {
					task.CompletedPomodoros--
					if err := tasks.Save(ctx, task); err != nil {
						return err
					}
				}
			} else if err != gorm.ErrRecordNotFound {
				return err
			}
		}

		return sessions.Delete(ctx, session.ID)
	})
}

// History returns sessions from the trailing day window, newest first,
// optionally narrowed to one task.
func (s *PomodoroService) History(ctx context.Context, userID uint, days int, taskID *uint) ([]model.PomodoroSession, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	since := time.Now().In(s.loc).AddDate(0, 0, -days)
	return s.sessions.ListSince(ctx, userID, since, taskID)
}

// Stats aggregates the trailing day window into summary counters.
func (s *PomodoroService) Stats(ctx context.Context, userID uint, days int) (*PomodoroStats, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	since := time.Now().In(s.loc).AddDate(0, 0, -days)

	sessions, err := s.sessions.ListSince(ctx, userID, since, nil)
	if err != nil {
		return nil, err
	}

	stats := &PomodoroStats{TotalSessions: len(sessions)}

	dayCounts := make(map[string]int)
	var dayOrder []string
	taskCounts := make(map[uint]int)
	taskTitles := make(map[uint]string)

	totalSeconds := 0
	for _, session := range sessions {
		if !session.IsCompleted {
			continue
		}
		stats.TotalCompleted++
		totalSeconds += session.Duration

		switch session.Type {
		case model.SessionWork:
			stats.WorkSessions++

			day := session.StartTime.In(s.loc).Format("2006-01-02")
			if _, ok := dayCounts[day]; !ok {
				dayOrder = append(dayOrder, day)
			}
			dayCounts[day]++

			if session.TaskID != nil {
				taskCounts[*session.TaskID]++
				if session.Task != nil {
					taskTitles[*session.TaskID] = session.Task.Title
				}
			}
		case model.SessionShortBreak:
			stats.ShortBreakSessions++
		case model.SessionLongBreak:
			stats.LongBreakSessions++
		}
	}

	// Whole minutes over the summed total, so sub-minute remainders from
	// individual sessions still add up.
	stats.TotalMinutes = totalSeconds / 60

	if stats.TotalSessions > 0 {
		stats.CompletionRate = round2(float64(stats.TotalCompleted) / float64(stats.TotalSessions))
	}

	// First maximum encountered wins ties.
	best := 0
	for _, day := range dayOrder {
		if dayCounts[day] > best {
			best = dayCounts[day]
			d := day
			stats.MostProductiveDay = &d
		}
	}

	bestTask := 0
	for id, count := range taskCounts {
		if count > bestTask || (count == bestTask && stats.MostFocusedTaskID != nil && id < *stats.MostFocusedTaskID) {
			bestTask = count
			taskID := id
			stats.MostFocusedTaskID = &taskID
			title := taskTitles[id]
			stats.MostFocusedTaskTitle = &title
		}
	}

	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
