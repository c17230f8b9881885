package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salesacademy/internal/models"
)

// SubtopicFilter narrows a subtopic listing to one parent topic.
type SubtopicFilter struct {
	TopicID *uint
}

// SubtopicRepository manages the middle level of the catalog.
type SubtopicRepository struct {
	db *gorm.DB
}

func NewSubtopicRepository(db *gorm.DB) *SubtopicRepository {
	return &SubtopicRepository{db: db}
}

func (r *SubtopicRepository) List(ctx context.Context, filter SubtopicFilter) ([]models.Subtopic, error) {
	db := r.db.WithContext(ctx)
	if filter.TopicID != nil {
		db = db.Where("topic_id = ?", *filter.TopicID)
	}

	var subtopics []models.Subtopic
	if err := db.Order("created_at DESC").Find(&subtopics).Error; err != nil {
		return nil, err
	}
	return subtopics, nil
}

func (r *SubtopicRepository) GetByID(ctx context.Context, id uint) (*models.Subtopic, error) {
	var subtopic models.Subtopic
	if err := r.db.WithContext(ctx).First(&subtopic, id).Error; err != nil {
		return nil, err
	}
	return &subtopic, nil
}

// FindBySlug returns (nil, nil) when no subtopic carries the slug.
func (r *SubtopicRepository) FindBySlug(ctx context.Context, slug string) (*models.Subtopic, error) {
	var subtopic models.Subtopic
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&subtopic).Error
	switch {
	case err == nil:
		return &subtopic, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find subtopic by slug: %w", err)
	}
}

// UpsertBySlug creates the subtopic or overwrites the existing row's
// descriptive fields and parent, preserving its id.
func (r *SubtopicRepository) UpsertBySlug(ctx context.Context, subtopic models.Subtopic) (*models.Subtopic, error) {
	existing, err := r.FindBySlug(ctx, subtopic.Slug)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	if existing == nil {
		if err := db.Create(&subtopic).Error; err != nil {
			return nil, fmt.Errorf("create subtopic: %w", err)
		}
		return &subtopic, nil
	}

	updates := map[string]interface{}{
		"title":       subtopic.Title,
		"description": subtopic.Description,
		"icon":        subtopic.Icon,
		"topic_id":    subtopic.TopicID,
	}
	if err := db.Model(existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update subtopic: %w", err)
	}
	return existing, nil
}

// Update applies a partial patch and returns the fresh row.
func (r *SubtopicRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Subtopic, error) {
	db := r.db.WithContext(ctx)
	if len(updates) > 0 {
		if err := db.Model(&models.Subtopic{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update subtopic: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *SubtopicRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Subtopic{}, id).Error
}

// DeleteSlugsNotIn prunes every subtopic outside the canonical slug set.
func (r *SubtopicRepository) DeleteSlugsNotIn(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Subtopic{}).Error
	}
	return r.db.WithContext(ctx).Where("slug NOT IN ?", slugs).Delete(&models.Subtopic{}).Error
}
