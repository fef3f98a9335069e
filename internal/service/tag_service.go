package service

import (
	"context"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

// TagInput carries the writable tag fields.
type TagInput struct {
	Name      string
	ColorCode string
}

// TagService provides CRUD over task tags.
type TagService struct {
	db   *gorm.DB
	tags *repository.TagRepository
}

func NewTagService(db *gorm.DB, tags *repository.TagRepository) *TagService {
	return &TagService{db: db, tags: tags}
}

func (s *TagService) List(ctx context.Context, userID uint) ([]model.Tag, error) {
	return s.tags.ListByUser(ctx, userID)
}

func (s *TagService) Create(ctx context.Context, userID uint, input TagInput) (*model.Tag, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}
	if input.ColorCode == "" {
		input.ColorCode = model.DefaultTagColor
	}

	tag := model.Tag{
		UserID:    userID,
		Name:      input.Name,
		ColorCode: input.ColorCode,
	}
	if err := s.tags.Create(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, userID, id uint, input TagInput) (*model.Tag, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}

	tag, err := s.tags.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "tag")
	}

	tag.Name = input.Name
	if input.ColorCode != "" {
		tag.ColorCode = input.ColorCode
	}
	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag after detaching it from every task.
func (s *TagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.tags.FindByID(ctx, userID, id)
	if err != nil {
		return notFound(err, "tag")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tags := s.tags.WithTx(tx)
		if err := tags.DetachFromTasks(ctx, tag.ID); err != nil {
			return err
		}
		return tags.Delete(ctx, userID, tag.ID)
	})
}
