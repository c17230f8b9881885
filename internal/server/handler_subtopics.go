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

// listSubtopics filters by topicId or topicSlug. An unknown slug yields an
// empty list, not an error.
func (s *Server) listSubtopics(c *gin.Context) {
	filter := repository.SubtopicFilter{}

	topicID, ok := parseUintQuery(c, "topicId")
	if !ok {
		return
	}
	filter.TopicID = topicID

	if topicSlug := c.Query("topicSlug"); topicSlug != "" && filter.TopicID == nil {
		topic, err := s.topics.FindBySlug(c.Request.Context(), topicSlug)
		if err != nil {
			s.storeError(c, err)
			return
		}
		if topic == nil {
			c.JSON(http.StatusOK, gin.H{"subtopics": []models.Subtopic{}})
			return
		}
		filter.TopicID = &topic.ID
	}

	subtopics, err := s.subtopics.List(c.Request.Context(), filter)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopics": subtopics})
}

type createSubtopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Slug        string `json:"slug"`
	TopicID     uint   `json:"topicId"`
}

func (s *Server) createSubtopic(c *gin.Context) {
	var req createSubtopicRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title required"})
		return
	}
	if req.TopicID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topicId required"})
		return
	}
	if _, err := s.topics.GetByID(c.Request.Context(), req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topicId"})
			return
		}
		s.storeError(c, err)
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

	subtopic, err := s.subtopics.UpsertBySlug(c.Request.Context(), models.Subtopic{
		Slug:        slugified,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		TopicID:     req.TopicID,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subtopic": subtopic})
}

func (s *Server) getSubtopic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	subtopic, err := s.subtopics.GetByID(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopic": subtopic})
}

func (s *Server) getSubtopicBySlug(c *gin.Context) {
	subtopic, err := s.subtopics.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	if subtopic == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopic": subtopic})
}

func (s *Server) updateSubtopic(c *gin.Context) {
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
		if !valid || topicID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topicId"})
			return
		}
		updates["topic_id"] = *topicID
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
			existing, err := s.subtopics.FindBySlug(ctx, candidate)
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

	subtopic, err := s.subtopics.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopic": subtopic})
}

func (s *Server) deleteSubtopic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.subtopics.Delete(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
