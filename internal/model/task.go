package model

import "time"

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single item in the tracker.
type Task struct {
	ID                 uint  `gorm:"primaryKey"`
	UserID             uint  `gorm:"index"`
	CategoryID         *uint `gorm:"index"`
	Title              string
	Description        string
	Status             string `gorm:"index"`
	Priority           string
	DueDate            *time.Time
	EstimatedPomodoros int
	CompletedPomodoros int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Tags     []Tag     `gorm:"many2many:task_tags"`
}
