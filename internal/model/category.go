package model

import "time"

// Default colors assigned when a client omits one.
const (
	DefaultCategoryColor = "#e53e3e"
	DefaultTagColor      = "#3b82f6"
)

// Category groups tasks by area (work, health, study, etc.).
// Deleting a category never deletes its tasks; their reference is nulled.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	Name      string
	ColorCode string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag labels tasks across categories. Many-to-many with Task; deleting a
// tag detaches it from all tasks.
type Tag struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	Name      string
	ColorCode string
	CreatedAt time.Time
	UpdatedAt time.Time
}
