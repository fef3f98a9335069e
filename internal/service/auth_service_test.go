package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro-tracker/internal/model"
)

func TestRegisterCreatesUserAndSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.authSvc.Register(ctx, RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "Secure123",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)

	settings, err := f.users.FindSettings(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultWorkDuration, settings.WorkDuration)
	assert.Equal(t, model.DefaultShortBreakDuration, settings.ShortBreakDuration)
	assert.Equal(t, model.DefaultLongBreakDuration, settings.LongBreakDuration)
	assert.Equal(t, model.DefaultLongBreakInterval, settings.LongBreakInterval)
	assert.True(t, settings.NotificationsEnabled)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.newUser(t, "alice")

	_, err := f.authSvc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Secure123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.authSvc.Register(ctx, RegisterInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "Secure123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.authSvc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.True(t, IsValidation(err))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	result, err := f.authSvc.Login(ctx, "alice", "Secure123")
	require.NoError(t, err)
	assert.Equal(t, userID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	_, err = f.authSvc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.authSvc.Login(ctx, "nobody", "Secure123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSettingsGetOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	// Drop the row created at registration to exercise lazy creation.
	require.NoError(t, f.db.Where("user_id = ?", userID).Delete(&model.UserSetting{}).Error)

	settings, err := f.authSvc.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultWorkDuration, settings.WorkDuration)

	// Second read returns the same materialized row.
	again, err := f.authSvc.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestUpdateSettingsMergesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, "alice")

	work := 1800
	notify := false
	updated, err := f.authSvc.UpdateSettings(ctx, userID, SettingsInput{
		WorkDuration:         &work,
		NotificationsEnabled: &notify,
	})
	require.NoError(t, err)
	assert.Equal(t, 1800, updated.WorkDuration)
	assert.False(t, updated.NotificationsEnabled)
	// Omitted fields keep their defaults.
	assert.Equal(t, model.DefaultShortBreakDuration, updated.ShortBreakDuration)
	assert.Equal(t, model.DefaultLongBreakInterval, updated.LongBreakInterval)

	bad := -5
	_, err = f.authSvc.UpdateSettings(ctx, userID, SettingsInput{WorkDuration: &bad})
	assert.True(t, IsValidation(err))
}

func TestSettingsUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.authSvc.GetSettings(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
