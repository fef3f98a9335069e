package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

// CreateTaskInput represents data required to create a task.
type CreateTaskInput struct {
	Title              string
	Description        string
	Status             string
	Priority           string
	DueDate            *time.Time
	EstimatedPomodoros int
	CategoryID         *uint
	TagIDs             []uint
}

// UpdateTaskInput is a partial update: nil fields are left unchanged.
// A CategoryID of 0 clears the category; a non-nil TagIDs replaces the
// whole tag set.
type UpdateTaskInput struct {
	Title              *string
	Description        *string
	Status             *string
	Priority           *string
	DueDate            *time.Time
	EstimatedPomodoros *int
	CompletedPomodoros *int
	CategoryID         *uint
	TagIDs             []uint
}

// TaskService wraps task-related business logic.
type TaskService struct {
	db         *gorm.DB
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	tags       *repository.TagRepository
	sessions   *repository.SessionRepository
}

func NewTaskService(db *gorm.DB, tasks *repository.TaskRepository, categories *repository.CategoryRepository, tags *repository.TagRepository, sessions *repository.SessionRepository) *TaskService {
	return &TaskService{db: db, tasks: tasks, categories: categories, tags: tags, sessions: sessions}
}

func (s *TaskService) List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, validationf("unknown status %q", filter.Status)
	}
	if filter.Priority != "" && !model.ValidPriority(filter.Priority) {
		return nil, validationf("unknown priority %q", filter.Priority)
	}
	return s.tasks.List(ctx, userID, filter)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err, "task")
	}
	return task, nil
}

// Create builds a task, validating that any referenced category and tags
// belong to the caller. Foreign-owned references surface as not-found.
func (s *TaskService) Create(ctx context.Context, userID uint, input CreateTaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, validationf("title is required")
	}
	if input.Status == "" {
		input.Status = model.StatusPending
	}
	if !model.ValidStatus(input.Status) {
		return nil, validationf("unknown status %q", input.Status)
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(input.Priority) {
		return nil, validationf("unknown priority %q", input.Priority)
	}
	if input.EstimatedPomodoros < 0 {
		return nil, validationf("estimated pomodoros must not be negative")
	}
	if input.EstimatedPomodoros == 0 {
		input.EstimatedPomodoros = 1
	}

	var task *model.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tasks := s.tasks.WithTx(tx)

		var categoryID *uint
		if input.CategoryID != nil && *input.CategoryID != 0 {
			category, err := s.categories.WithTx(tx).FindByID(ctx, userID, *input.CategoryID)
			if err != nil {
				return notFound(err, "category")
			}
			categoryID = &category.ID
		}

		tags, err := s.resolveTags(ctx, tx, userID, input.TagIDs)
		if err != nil {
			return err
		}

		created := model.Task{
			UserID:             userID,
			CategoryID:         categoryID,
			Title:              input.Title,
			Description:        input.Description,
			Status:             input.Status,
			Priority:           input.Priority,
			DueDate:            input.DueDate,
			EstimatedPomodoros: input.EstimatedPomodoros,
			Tags:               tags,
		}
		if err := tasks.Create(ctx, &created); err != nil {
			return err
		}
		task = &created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload with associations so responses carry category details.
	return s.Get(ctx, userID, task.ID)
}

// Update merges the supplied fields over the stored task inside one
// transaction.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input UpdateTaskInput) (*model.Task, error) {
	if input.Status != nil && !model.ValidStatus(*input.Status) {
		return nil, validationf("unknown status %q", *input.Status)
	}
	if input.Priority != nil && !model.ValidPriority(*input.Priority) {
		return nil, validationf("unknown priority %q", *input.Priority)
	}
	if input.EstimatedPomodoros != nil && *input.EstimatedPomodoros < 0 {
		return nil, validationf("estimated pomodoros must not be negative")
	}
	if input.CompletedPomodoros != nil && *input.CompletedPomodoros < 0 {
		return nil, validationf("completed pomodoros must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.FindByID(ctx, userID, taskID)
		if err != nil {
			return notFound(err, "task")
		}

		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.EstimatedPomodoros != nil {
			task.EstimatedPomodoros = *input.EstimatedPomodoros
		}
		if input.CompletedPomodoros != nil {
			task.CompletedPomodoros = *input.CompletedPomodoros
		}

		if input.CategoryID != nil {
			if *input.CategoryID == 0 {
				// Zero is the sentinel for "clear category".
				task.CategoryID = nil
				task.Category = nil
			} else {
				category, err := s.categories.WithTx(tx).FindByID(ctx, userID, *input.CategoryID)
				if err != nil {
					return notFound(err, "category")
				}
				task.CategoryID = &category.ID
				task.Category = category
			}
		}

		if input.TagIDs != nil {
			tags, err := s.resolveTags(ctx, tx, userID, input.TagIDs)
			if err != nil {
				return err
			}
			if err := tasks.ReplaceTags(ctx, task, tags); err != nil {
				return err
			}
		}

		return tasks.Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, taskID)
}

// Complete marks a task completed.
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) error {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return notFound(err, "task")
	}
	task.Status = model.StatusCompleted
	return s.tasks.Save(ctx, task)
}

// Delete removes a task. Linked sessions survive with their task
// reference nulled, mirroring category and tag deletion.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return notFound(err, "task")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.sessions.WithTx(tx).DetachTask(ctx, task.ID); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Delete(ctx, userID, task.ID)
	})
}

// resolveTags loads the caller's tags for the given ids and rejects the
// set when any id is missing or owned by someone else.
func (s *TaskService) resolveTags(ctx context.Context, tx *gorm.DB, userID uint, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tags, err := s.tags.WithTx(tx).FindByIDs(ctx, userID, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, notFound(gorm.ErrRecordNotFound, "tag")
	}
	return tags, nil
}
