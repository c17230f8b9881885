package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salesacademy/internal/models"
)

// LessonFilter narrows a lesson listing by parent and section.
type LessonFilter struct {
	TopicID    *uint
	SubtopicID *uint
	Section    *models.Section
}

// LessonRepository manages the leaf level of the catalog.
type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func (r *LessonRepository) List(ctx context.Context, filter LessonFilter) ([]models.Lesson, error) {
	db := r.db.WithContext(ctx)
	if filter.TopicID != nil {
		db = db.Where("topic_id = ?", *filter.TopicID)
	}
	if filter.SubtopicID != nil {
		db = db.Where("subtopic_id = ?", *filter.SubtopicID)
	}
	if filter.Section != nil {
		db = db.Where("section = ?", *filter.Section)
	}

	var lessons []models.Lesson
	if err := db.Order("created_at DESC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *LessonRepository) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindBySlug returns (nil, nil) when no lesson carries the slug.
func (r *LessonRepository) FindBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&lesson).Error
	switch {
	case err == nil:
		return &lesson, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find lesson by slug: %w", err)
	}
}

// UpsertBySlug creates the lesson or overwrites the existing row's fields
// including parents and section, preserving its id.
func (r *LessonRepository) UpsertBySlug(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	existing, err := r.FindBySlug(ctx, lesson.Slug)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	if existing == nil {
		if err := db.Create(&lesson).Error; err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}
		return &lesson, nil
	}

	updates := map[string]interface{}{
		"title":       lesson.Title,
		"description": lesson.Description,
		"icon":        lesson.Icon,
		"topic_id":    lesson.TopicID,
		"subtopic_id": lesson.SubtopicID,
		"section":     lesson.Section,
	}
	if err := db.Model(existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return existing, nil
}

// Update applies a partial patch and returns the fresh row.
func (r *LessonRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Lesson, error) {
	db := r.db.WithContext(ctx)
	if len(updates) > 0 {
		if err := db.Model(&models.Lesson{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update lesson: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Lesson{}, id).Error
}

// DeleteSlugsNotIn prunes every lesson outside the canonical slug set.
func (r *LessonRepository) DeleteSlugsNotIn(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Lesson{}).Error
	}
	return r.db.WithContext(ctx).Where("slug NOT IN ?", slugs).Delete(&models.Lesson{}).Error
}
