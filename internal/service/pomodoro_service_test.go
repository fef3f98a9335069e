package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro-tracker/internal/model"
)

func TestStartSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	session, err := f.pomodoroSvc.Start(ctx, userID, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionWork,
		Duration: 1500,
	})
	require.NoError(t, err)
	assert.False(t, session.IsCompleted)
	assert.Nil(t, session.EndTime)
	require.NotNil(t, session.TaskID)
	assert.Equal(t, task.ID, *session.TaskID)

	_, err = f.pomodoroSvc.Start(ctx, userID, StartSessionInput{Type: "nap", Duration: 60})
	assert.True(t, IsValidation(err))

	_, err = f.pomodoroSvc.Start(ctx, userID, StartSessionInput{Type: model.SessionWork, Duration: 0})
	assert.True(t, IsValidation(err))
}

func TestStartSessionRejectsForeignTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")

	task, err := f.taskSvc.Create(ctx, bob, CreateTaskInput{Title: "bob's"})
	require.NoError(t, err)

	_, err = f.pomodoroSvc.Start(ctx, alice, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionWork,
		Duration: 1500,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteSessionIncrementsTaskCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	session, err := f.pomodoroSvc.Start(ctx, userID, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionWork,
		Duration: 1500,
	})
	require.NoError(t, err)

	end := time.Now().UTC()
	completed, err := f.pomodoroSvc.Complete(ctx, userID, session.ID, end, true)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.EndTime)

	fetched, err := f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.CompletedPomodoros)

	// Repeated completion is a no-op: the counter never double-counts.
	_, err = f.pomodoroSvc.Complete(ctx, userID, session.ID, end.Add(time.Minute), true)
	require.NoError(t, err)

	fetched, err = f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.CompletedPomodoros)
}

func TestCompleteBreakSessionLeavesCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	session, err := f.pomodoroSvc.Start(ctx, userID, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionShortBreak,
		Duration: 300,
	})
	require.NoError(t, err)

	_, err = f.pomodoroSvc.Complete(ctx, userID, session.ID, time.Now().UTC(), true)
	require.NoError(t, err)

	fetched, err := f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.CompletedPomodoros)
}

func TestAbandonedSessionLeavesCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	session, err := f.pomodoroSvc.Start(ctx, userID, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionWork,
		Duration: 1500,
	})
	require.NoError(t, err)

	finished, err := f.pomodoroSvc.Complete(ctx, userID, session.ID, time.Now().UTC(), false)
	require.NoError(t, err)
	assert.False(t, finished.IsCompleted)
	require.NotNil(t, finished.EndTime)

	fetched, err := f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.CompletedPomodoros)
}

func TestDeleteSessionDecrementsTaskCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	session, err := f.pomodoroSvc.Start(ctx, userID, StartSessionInput{
		TaskID:   &task.ID,
		Type:     model.SessionWork,
		Duration: 1500,
	})
	require.NoError(t, err)
	_, err = f.pomodoroSvc.Complete(ctx, userID, session.ID, time.Now().UTC(), true)
	require.NoError(t, err)

	require.NoError(t, f.pomodoroSvc.Delete(ctx, userID, session.ID))

	fetched, err := f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.CompletedPomodoros)

	_, err = f.sessions.FindByID(ctx, userID, session.ID)
	assert.Error(t, err)
}

func TestDeleteSessionCounterFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	// Completed work session inserted directly, without the counter bump.
	session := f.newSession(t, userID, &task.ID, model.SessionWork, time.Now(), 1500, true)

	require.NoError(t, f.pomodoroSvc.Delete(ctx, userID, session.ID))

	fetched, err := f.taskSvc.Get(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.CompletedPomodoros)
}

func TestSessionOwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")

	session := f.newSession(t, alice, nil, model.SessionWork, time.Now(), 1500, false)

	_, err := f.pomodoroSvc.Complete(ctx, bob, session.ID, time.Now().UTC(), true)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.pomodoroSvc.Delete(ctx, bob, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryWindowAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	now := time.Now().UTC()
	f.newSession(t, userID, &task.ID, model.SessionWork, now.Add(-time.Hour), 1500, true)
	f.newSession(t, userID, nil, model.SessionShortBreak, now.Add(-2*time.Hour), 300, true)
	f.newSession(t, userID, nil, model.SessionWork, now.AddDate(0, 0, -10), 1500, true)

	history, err := f.pomodoroSvc.History(ctx, userID, 7, nil)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.True(t, history[0].StartTime.After(history[1].StartTime))

	history, err = f.pomodoroSvc.History(ctx, userID, 7, &task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	history, err = f.pomodoroSvc.History(ctx, userID, 30, nil)
	require.NoError(t, err)
	require.Len(t, history, 3)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	task, err := f.taskSvc.Create(ctx, userID, CreateTaskInput{Title: "Deep work"})
	require.NoError(t, err)

	now := time.Now().UTC()
	f.newSession(t, userID, &task.ID, model.SessionWork, now.Add(-time.Hour), 1500, true)
	f.newSession(t, userID, &task.ID, model.SessionWork, now.Add(-2*time.Hour), 1500, true)
	f.newSession(t, userID, nil, model.SessionShortBreak, now.Add(-3*time.Hour), 300, true)
	f.newSession(t, userID, nil, model.SessionWork, now.Add(-4*time.Hour), 1500, false)

	stats, err := f.pomodoroSvc.Stats(ctx, userID, 30)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalSessions)
	assert.Equal(t, 3, stats.TotalCompleted)
	assert.Equal(t, 2, stats.WorkSessions)
	assert.Equal(t, 1, stats.ShortBreakSessions)
	assert.Equal(t, 0, stats.LongBreakSessions)
	assert.Equal(t, 25+25+5, stats.TotalMinutes)
	assert.Equal(t, 0.75, stats.CompletionRate)
	require.NotNil(t, stats.MostFocusedTaskID)
	assert.Equal(t, task.ID, *stats.MostFocusedTaskID)
	require.NotNil(t, stats.MostFocusedTaskTitle)
	assert.Equal(t, "Deep work", *stats.MostFocusedTaskTitle)
	require.NotNil(t, stats.MostProductiveDay)
}

func TestStatsMinutesAccumulateAcrossSessions(t *testing.T) {
	f := newFixture(t)
	userID := f.newUser(t, "alice")

	now := time.Now().UTC()
	f.newSession(t, userID, nil, model.SessionWork, now.Add(-time.Hour), 90, true)
	f.newSession(t, userID, nil, model.SessionWork, now.Add(-2*time.Hour), 90, true)

	stats, err := f.pomodoroSvc.Stats(context.Background(), userID, 30)
	require.NoError(t, err)

	// 180 seconds total is 3 whole minutes, even though each session on
	// its own is only a minute and a half.
	assert.Equal(t, 3, stats.TotalMinutes)
}

func TestStatsEmpty(t *testing.T) {
	f := newFixture(t)
	userID := f.newUser(t, "alice")

	stats, err := f.pomodoroSvc.Stats(context.Background(), userID, 30)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0.0, stats.CompletionRate)
	assert.Nil(t, stats.MostProductiveDay)
	assert.Nil(t, stats.MostFocusedTaskID)
}
