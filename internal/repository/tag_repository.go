package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/model"
)

// TagRepository manages task tags and their task associations.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

func (r *TagRepository) ListByUser(ctx context.Context, userID uint) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, userID, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs returns the caller's tags among ids. Callers compare lengths
// to detect references to missing or foreign tags.
func (r *TagRepository) FindByIDs(ctx context.Context, userID uint, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Save(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Tag{}).Error; err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// DetachFromTasks removes the tag from every task that carries it.
func (r *TagRepository) DetachFromTasks(ctx context.Context, tagID uint) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM task_tags WHERE tag_id = ?", tagID).Error; err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	return nil
}
