package model

import "time"

// Pomodoro session types.
const (
	SessionWork       = "work"
	SessionShortBreak = "short_break"
	SessionLongBreak  = "long_break"
)

// ValidSessionType reports whether t is a known session type.
func ValidSessionType(t string) bool {
	return t == SessionWork || t == SessionShortBreak || t == SessionLongBreak
}

// PomodoroSession is one timed work or break interval. A session may be
// linked to a task; the link is nulled, not cascaded, when the task goes
// away.
type PomodoroSession struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	TaskID      *uint `gorm:"index"`
	StartTime   time.Time
	EndTime     *time.Time
	Duration    int // seconds
	Type        string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Task *Task `gorm:"foreignKey:TaskID"`
}
