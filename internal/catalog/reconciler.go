package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"salesacademy/internal/models"
	"salesacademy/internal/repository"
)

// Reconciler applies a canonical definition to the store. Running it twice
// with the same definition leaves the store unchanged the second time.
type Reconciler struct {
	topics    *repository.TopicRepository
	subtopics *repository.SubtopicRepository
	lessons   *repository.LessonRepository
	log       *zap.Logger
}

func NewReconciler(
	topics *repository.TopicRepository,
	subtopics *repository.SubtopicRepository,
	lessons *repository.LessonRepository,
	log *zap.Logger,
) *Reconciler {
	return &Reconciler{
		topics:    topics,
		subtopics: subtopics,
		lessons:   lessons,
		log:       log,
	}
}

// Run upserts the definition parent-before-child, then prunes everything
// outside it in one fixed child-before-parent plan (lessons, subtopics,
// topics), so no deletion can strand a live child behind a removed parent.
func (r *Reconciler) Run(ctx context.Context, def Definition) error {
	topicIDs := make(map[string]uint, len(def.Topics))
	for _, t := range def.Topics {
		topic, err := r.topics.UpsertBySlug(ctx, models.Topic{
			Slug:        t.Slug,
			Title:       t.Title,
			Description: t.Description,
			Icon:        t.Icon,
		})
		if err != nil {
			return fmt.Errorf("upsert topic %q: %w", t.Slug, err)
		}
		topicIDs[t.Slug] = topic.ID
	}

	subtopicIDs := make(map[string]uint, len(def.Subtopics))
	for _, s := range def.Subtopics {
		topicID, ok := topicIDs[s.Topic]
		if !ok {
			return fmt.Errorf("subtopic %q: unknown topic %q", s.Slug, s.Topic)
		}
		subtopic, err := r.subtopics.UpsertBySlug(ctx, models.Subtopic{
			Slug:        s.Slug,
			Title:       s.Title,
			Description: s.Description,
			Icon:        s.Icon,
			TopicID:     topicID,
		})
		if err != nil {
			return fmt.Errorf("upsert subtopic %q: %w", s.Slug, err)
		}
		subtopicIDs[s.Slug] = subtopic.ID
	}

	for _, l := range def.Lessons {
		lesson := models.Lesson{
			Slug:        l.Slug,
			Title:       l.Title,
			Description: l.Description,
			Icon:        l.Icon,
		}
		if id, ok := topicIDs[l.Topic]; ok {
			lesson.TopicID = &id
		}
		if id, ok := subtopicIDs[l.Subtopic]; ok {
			lesson.SubtopicID = &id
		}
		if section, ok := models.ParseSection(l.Section); ok {
			lesson.Section = section
		}
		if _, err := r.lessons.UpsertBySlug(ctx, lesson); err != nil {
			return fmt.Errorf("upsert lesson %q: %w", l.Slug, err)
		}
	}

	// Prune plan, children first.
	if err := r.lessons.DeleteSlugsNotIn(ctx, lessonSlugs(def)); err != nil {
		return fmt.Errorf("prune lessons: %w", err)
	}
	if err := r.subtopics.DeleteSlugsNotIn(ctx, subtopicSlugs(def)); err != nil {
		return fmt.Errorf("prune subtopics: %w", err)
	}
	if err := r.topics.DeleteSlugsNotIn(ctx, topicSlugs(def)); err != nil {
		return fmt.Errorf("prune topics: %w", err)
	}

	r.log.Info("catalog reconciled",
		zap.Int("topics", len(def.Topics)),
		zap.Int("subtopics", len(def.Subtopics)),
		zap.Int("lessons", len(def.Lessons)),
	)
	return nil
}

func topicSlugs(def Definition) []string {
	slugs := make([]string, 0, len(def.Topics))
	for _, t := range def.Topics {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

func subtopicSlugs(def Definition) []string {
	slugs := make([]string, 0, len(def.Subtopics))
	for _, s := range def.Subtopics {
		slugs = append(slugs, s.Slug)
	}
	return slugs
}

func lessonSlugs(def Definition) []string {
	slugs := make([]string, 0, len(def.Lessons))
	for _, l := range def.Lessons {
		slugs = append(slugs, l.Slug)
	}
	return slugs
}
