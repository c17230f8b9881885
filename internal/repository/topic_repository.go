package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salesacademy/internal/models"
)

// TopicRepository manages the root level of the catalog.
type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepository) GetByID(ctx context.Context, id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

// FindBySlug returns (nil, nil) when no topic carries the slug. The upsert
// branch and the slug uniqueness probe both rely on that.
func (r *TopicRepository) FindBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&topic).Error
	switch {
	case err == nil:
		return &topic, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find topic by slug: %w", err)
	}
}

// UpsertBySlug creates the topic or overwrites the descriptive fields of
// the row already holding the slug, preserving its id.
func (r *TopicRepository) UpsertBySlug(ctx context.Context, topic models.Topic) (*models.Topic, error) {
	existing, err := r.FindBySlug(ctx, topic.Slug)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	if existing == nil {
		if err := db.Create(&topic).Error; err != nil {
			return nil, fmt.Errorf("create topic: %w", err)
		}
		return &topic, nil
	}

	updates := map[string]interface{}{
		"title":       topic.Title,
		"description": topic.Description,
		"icon":        topic.Icon,
	}
	if err := db.Model(existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return existing, nil
}

// Update applies a partial patch and returns the fresh row.
func (r *TopicRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Topic, error) {
	db := r.db.WithContext(ctx)
	if len(updates) > 0 {
		if err := db.Model(&models.Topic{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update topic: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the topic unconditionally. The store cascades its
// subtopics and nullifies lesson references.
func (r *TopicRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Topic{}, id).Error
}

// DeleteSlugsNotIn prunes every topic outside the canonical slug set.
func (r *TopicRepository) DeleteSlugsNotIn(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Topic{}).Error
	}
	return r.db.WithContext(ctx).Where("slug NOT IN ?", slugs).Delete(&models.Topic{}).Error
}
