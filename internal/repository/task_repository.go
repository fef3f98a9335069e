package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
)

// taskOrder is the fixed list ordering: priority high to low, then due
// date soonest first with undated tasks last, then oldest first.
const taskOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, due_date ASC NULLS LAST, created_at ASC"

// TaskFilter narrows List results. All set fields apply conjunctively.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID uint
	Search     string // case-insensitive match over title and description
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var tasks []model.Task
	if err := query.Preload("Category").Preload("Tags").
		Order(taskOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Preload("Category").Preload("Tags").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// ReplaceTags swaps the task's entire tag set.
func (r *TaskRepository) ReplaceTags(ctx context.Context, task *model.Task, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(task).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	task.Tags = tags
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ClearCategory nulls the category reference on every task that points at
// it. Called when the category itself is deleted.
func (r *TaskRepository) ClearCategory(ctx context.Context, categoryID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	return nil
}

// CreatedBetween returns the user's tasks created inside [from, to),
// with categories preloaded for distribution reports.
func (r *TaskRepository) CreatedBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Preload("Category").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
