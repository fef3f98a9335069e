package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pomodoro-tracker/internal/auth"
	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

// newTestDB opens an isolated in-memory SQLite database. The shared-cache
// DSN keeps the database alive across pooled connections for the test's
// lifetime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

type fixture struct {
	db         *gorm.DB
	users      *repository.UserRepository
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	tags       *repository.TagRepository
	sessions   *repository.SessionRepository

	authSvc      *AuthService
	taskSvc      *TaskService
	categorySvc  *CategoryService
	tagSvc       *TagService
	pomodoroSvc  *PomodoroService
	analyticsSvc *AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		db:         db,
		users:      repository.NewUserRepository(db),
		tasks:      repository.NewTaskRepository(db),
		categories: repository.NewCategoryRepository(db),
		tags:       repository.NewTagRepository(db),
		sessions:   repository.NewSessionRepository(db),
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	f.authSvc = NewAuthService(db, f.users, tokens)
	f.taskSvc = NewTaskService(db, f.tasks, f.categories, f.tags, f.sessions)
	f.categorySvc = NewCategoryService(db, f.categories, f.tasks)
	f.tagSvc = NewTagService(db, f.tags)
	f.pomodoroSvc = NewPomodoroService(db, f.sessions, f.tasks, time.UTC)
	f.analyticsSvc = NewAnalyticsService(f.tasks, f.sessions, time.UTC)

	return f
}

// newUser registers a user and returns its id.
func (f *fixture) newUser(t *testing.T, username string) uint {
	t.Helper()

	result, err := f.authSvc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Secure123",
	})
	require.NoError(t, err)
	return result.User.ID
}

// newSession inserts a session row directly, bypassing the service, so
// tests can control start times.
func (f *fixture) newSession(t *testing.T, userID uint, taskID *uint, kind string, start time.Time, duration int, completed bool) *model.PomodoroSession {
	t.Helper()

	session := &model.PomodoroSession{
		UserID:      userID,
		TaskID:      taskID,
		StartTime:   start,
		Duration:    duration,
		Type:        kind,
		IsCompleted: completed,
	}
	require.NoError(t, f.sessions.Create(context.Background(), session))
	return session
}
