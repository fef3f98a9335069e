package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
)

// SessionRepository handles CRUD for Pomodoro sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{db: tx}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.PomodoroSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, userID, sessionID uint) (*model.PomodoroSession, error) {
	var session model.PomodoroSession
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, sessionID).
		Preload("Task").
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.PomodoroSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.PomodoroSession{}, sessionID).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListSince returns sessions started at or after since, newest first,
// optionally narrowed to one task.
func (r *SessionRepository) ListSince(ctx context.Context, userID uint, since time.Time, taskID *uint) ([]model.PomodoroSession, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND start_time >= ?", userID, since)
	if taskID != nil {
		query = query.Where("task_id = ?", *taskID)
	}

	var sessions []model.PomodoroSession
	if err := query.Preload("Task").Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// CompletedBetween returns completed sessions started inside [from, to).
func (r *SessionRepository) CompletedBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.PomodoroSession, error) {
	var sessions []model.PomodoroSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ? AND start_time >= ? AND start_time < ?", userID, true, from, to).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// CompletedWorkByTask returns every completed work session for one task,
// oldest first.
func (r *SessionRepository) CompletedWorkByTask(ctx context.Context, taskID uint) ([]model.PomodoroSession, error) {
	var sessions []model.PomodoroSession
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND type = ? AND is_completed = ?", taskID, model.SessionWork, true).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// DetachTask nulls the task reference on the task's sessions. Session
// history outlives task deletion.
func (r *SessionRepository) DetachTask(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.PomodoroSession{}).
		Where("task_id = ?", taskID).
		Update("task_id", nil).Error; err != nil {
		return fmt.Errorf("detach task: %w", err)
	}
	return nil
}
