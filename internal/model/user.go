package model

import "time"

// User owns all other records in the tracker.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:150"`
	Email        string `gorm:"uniqueIndex;size:254"`
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Default timer durations, in seconds.
const (
	DefaultWorkDuration       = 25 * 60
	DefaultShortBreakDuration = 5 * 60
	DefaultLongBreakDuration  = 15 * 60
	DefaultLongBreakInterval  = 4
)

// UserSetting stores per-user Pomodoro preferences. Exactly one row per
// user, created lazily on first settings access.
type UserSetting struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint `gorm:"uniqueIndex"`
	WorkDuration         int
	ShortBreakDuration   int
	LongBreakDuration    int
	LongBreakInterval    int
	NotificationsEnabled bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultSettings returns the settings row created on first access.
func DefaultSettings(userID uint) UserSetting {
	return UserSetting{
		UserID:               userID,
		WorkDuration:         DefaultWorkDuration,
		ShortBreakDuration:   DefaultShortBreakDuration,
		LongBreakDuration:    DefaultLongBreakDuration,
		LongBreakInterval:    DefaultLongBreakInterval,
		NotificationsEnabled: true,
	}
}
