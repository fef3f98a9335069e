package service

import (
	"context"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name      string
	ColorCode string
}

// CategoryService provides CRUD over task categories.
type CategoryService struct {
	db         *gorm.DB
	categories *repository.CategoryRepository
	tasks      *repository.TaskRepository
}

func NewCategoryService(db *gorm.DB, categories *repository.CategoryRepository, tasks *repository.TaskRepository) *CategoryService {
	return &CategoryService{db: db, categories: categories, tasks: tasks}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}
	if input.ColorCode == "" {
		input.ColorCode = model.DefaultCategoryColor
	}

	category := model.Category{
		UserID:    userID,
		Name:      input.Name,
		ColorCode: input.ColorCode,
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uint, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}

	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "category")
	}

	category.Name = input.Name
	if input.ColorCode != "" {
		category.ColorCode = input.ColorCode
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category and nulls the reference on its tasks. Tasks
// themselves are never cascaded.
func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return notFound(err, "category")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).ClearCategory(ctx, category.ID); err != nil {
			return err
		}
		return s.categories.WithTx(tx).Delete(ctx, userID, category.ID)
	})
}
