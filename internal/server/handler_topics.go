package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salesacademy/internal/models"
	"salesacademy/internal/slug"
)

func (s *Server) listTopics(c *gin.Context) {
	topics, err := s.topics.List(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

type createTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Slug        string `json:"slug"`
}

// createTopic is an upsert by slug: posting an existing slug overwrites
// that row and keeps its id.
func (s *Server) createTopic(c *gin.Context) {
	var req createTopicRequest
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

	topic, err := s.topics.UpsertBySlug(c.Request.Context(), models.Topic{
		Slug:        slugified,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

func (s *Server) getTopic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	topic, err := s.topics.GetByID(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

func (s *Server) getTopicBySlug(c *gin.Context) {
	topic, err := s.topics.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	if topic == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

func (s *Server) updateTopic(c *gin.Context) {
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

	// A new slug value or a changed title re-derives the slug, probing
	// past other rows so renames never collide.
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
			existing, err := s.topics.FindBySlug(ctx, candidate)
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

	topic, err := s.topics.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

// deleteTopic is an unconditional hard delete. The store cascades
// subtopics and nullifies lesson references.
func (s *Server) deleteTopic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.topics.Delete(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
