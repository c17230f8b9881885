package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salesacademy/internal/auth"
)

type telegramLoginRequest struct {
	InitDataRaw string `json:"initDataRaw"`
}

// telegramLogin verifies the Mini App identity proof, upserts the user and
// sets the session cookie.
func (s *Server) telegramLogin(c *gin.Context) {
	var req telegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InitDataRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing initDataRaw"})
		return
	}

	if !auth.ValidateInitData(req.InitDataRaw, s.cfg.BotToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	tgUser := auth.ParseInitDataUser(req.InitDataRaw)
	if tgUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user data"})
		return
	}

	user, err := s.users.UpsertFromLogin(c.Request.Context(), tgUser.ID, tgUser.Username, tgUser.FirstName, tgUser.LastName)
	if err != nil {
		s.storeError(c, err)
		return
	}

	if err := s.sessions.SetSession(c.Writer, auth.Claims{UserID: user.ID, Role: user.Role}); err != nil {
		s.log.Error("set session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// me returns the session subject's user record.
func (s *Server) me(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := s.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		s.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// devLogin issues an ADMIN session for the synthetic dev identity. It is a
// local-development capability only; with the flag off it answers 403 and
// touches nothing.
func (s *Server) devLogin(c *gin.Context) {
	if !s.cfg.DevAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Dev admin login disabled"})
		return
	}

	user, err := s.users.PromoteDevAdmin(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}

	if err := s.sessions.SetSession(c.Writer, auth.Claims{UserID: user.ID, Role: user.Role}); err != nil {
		s.log.Error("set session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}
