// Package server exposes the catalog and the Telegram Mini App login over
// HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salesacademy/internal/auth"
	"salesacademy/internal/config"
	"salesacademy/internal/repository"
)

// Server wires the HTTP surface: public catalog reads, cookie-session
// auth, and admin-gated catalog writes.
type Server struct {
	cfg       config.Config
	log       *zap.Logger
	sessions  *auth.SessionManager
	users     *repository.UserRepository
	topics    *repository.TopicRepository
	subtopics *repository.SubtopicRepository
	lessons   *repository.LessonRepository
	router    *gin.Engine
}

func New(
	cfg config.Config,
	log *zap.Logger,
	sessions *auth.SessionManager,
	users *repository.UserRepository,
	topics *repository.TopicRepository,
	subtopics *repository.SubtopicRepository,
	lessons *repository.LessonRepository,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:       cfg,
		log:       log,
		sessions:  sessions,
		users:     users,
		topics:    topics,
		subtopics: subtopics,
		lessons:   lessons,
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery(), s.corsMiddleware())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/auth/telegram", s.telegramLogin)
	r.GET("/me", s.requireSession(), s.me)
	r.POST("/dev/login", s.devLogin)

	topics := r.Group("/topics")
	{
		topics.GET("", s.listTopics)
		topics.GET("/:id", s.getTopic)
		topics.GET("/slug/:slug", s.getTopicBySlug)
		topics.POST("", s.requireAdmin(), s.createTopic)
		topics.PATCH("/:id", s.requireAdmin(), s.updateTopic)
		topics.DELETE("/:id", s.requireAdmin(), s.deleteTopic)
	}

	subtopics := r.Group("/subtopics")
	{
		subtopics.GET("", s.listSubtopics)
		subtopics.GET("/:id", s.getSubtopic)
		subtopics.GET("/slug/:slug", s.getSubtopicBySlug)
		subtopics.POST("", s.requireAdmin(), s.createSubtopic)
		subtopics.PATCH("/:id", s.requireAdmin(), s.updateSubtopic)
		subtopics.DELETE("/:id", s.requireAdmin(), s.deleteSubtopic)
	}

	lessons := r.Group("/lessons")
	{
		lessons.GET("", s.listLessons)
		lessons.GET("/:id", s.getLesson)
		lessons.GET("/slug/:slug", s.getLessonBySlug)
		lessons.POST("", s.requireAdmin(), s.createLesson)
		lessons.PATCH("/:id", s.requireAdmin(), s.updateLesson)
		lessons.DELETE("/:id", s.requireAdmin(), s.deleteLesson)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// storeError maps persistence failures onto the response taxonomy: unique
// constraint losers get 409, missing rows 404, everything else 500.
func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		s.log.Error("store error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
