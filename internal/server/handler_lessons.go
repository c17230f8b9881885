package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salesacademy/internal/models"
	"salesacademy/internal/repository"
	"salesacademy/internal/slug"
)

// listLessons filters by parent id or slug and by section. Unknown parent
// slugs yield an empty list; unknown section values are ignored.
func (s *Server) listLessons(c *gin.Context) {
	filter := repository.LessonFilter{}
	ctx := c.Request.Context()

	topicID, ok := parseUintQuery(c, "topicId")
	if !ok {
		return
	}
	filter.TopicID = topicID

	if topicSlug := c.Query("topicSlug"); topicSlug != "" && filter.TopicID == nil {
		topic, err := s.topics.FindBySlug(ctx, topicSlug)
		if err != nil {
			s.storeError(c, err)
			return
		}
		if topic == nil {
			c.JSON(http.StatusOK, gin.H{"lessons": []models.Lesson{}})
			return
		}
		filter.TopicID = &topic.ID
	}

	subtopicID, ok := parseUintQuery(c, "subtopicId")
	if !ok {
		return
	}
	filter.SubtopicID = subtopicID

	if subtopicSlug := c.Query("subtopicSlug"); subtopicSlug != "" && filter.SubtopicID == nil {
		subtopic, err := s.subtopics.FindBySlug(ctx, subtopicSlug)
		if err != nil {
			s.storeError(c, err)
			return
		}
		if subtopic == nil {
			c.JSON(http.StatusOK, gin.H{"lessons": []models.Lesson{}})
			return
		}
		filter.SubtopicID = &subtopic.ID
	}

	if raw := c.Query("section"); raw != "" {
		if section, valid := models.ParseSection(raw); valid {
			filter.Section = &section
		}
	}

	lessons, err := s.lessons.List(ctx, filter)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

type createLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Slug        string `json:"slug"`
	TopicID     *uint  `json:"topicId"`
	SubtopicID  *uint  `json:"subtopicId"`
	Section     string `json:"section"`
}

func (s *Server) createLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title required"})
		return
	}

	base := req.Slug
	if base == "" {
		base = req.Title
	}
	slugified := slug.Slugify(base)
	if slugified == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug required"})
		return
	}

	lesson := models.Lesson{
		Slug:        slugified,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		TopicID:     req.TopicID,
		SubtopicID:  req.SubtopicID,
	}
	if section, valid := models.ParseSection(req.Section); valid {
		lesson.Section = section
	}

	created, err := s.lessons.UpsertBySlug(c.Request.Context(), lesson)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": created})
}

func (s *Server) getLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lesson, err := s.lessons.GetByID(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

func (s *Server) getLessonBySlug(c *gin.Context) {
	lesson, err := s.lessons.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	if lesson == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

func (s *Server) updateLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	updates := map[string]interface{}{}
	title, titleSet := stringField(body, "title")
	if titleSet {
		updates["title"] = title
	}
	if v, ok := stringField(body, "description"); ok {
		updates["description"] = v
	}
	if v, ok := stringField(body, "icon"); ok {
		updates["icon"] = v
	}
	if topicID, present, valid := uintField(body, "topicId"); present {
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topicId"})
			return
		}
		updates["topic_id"] = topicID
	}
	if subtopicID, present, valid := uintField(body, "subtopicId"); present {
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtopicId"})
			return
		}
		updates["subtopic_id"] = subtopicID
	}
	if v, ok := stringField(body, "section"); ok {
		if section, valid := models.ParseSection(v); valid {
			updates["section"] = section
		}
	}

	slugInput, slugSet := stringField(body, "slug")
	if slugSet || titleSet {
		base := slugInput
		if base == "" && titleSet {
			base = title
		}
		if base == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug required"})
			return
		}
		ctx := c.Request.Context()
		newSlug, err := slug.EnsureUnique(func(candidate string) (bool, error) {
			existing, err := s.lessons.FindBySlug(ctx, candidate)
			if err != nil {
				return false, err
			}
			return existing != nil && existing.ID != id, nil
		}, base)
		if err != nil {
			s.storeError(c, err)
			return
		}
		updates["slug"] = newSlug
	}

	lesson, err := s.lessons.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

func (s *Server) deleteLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.lessons.Delete(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
