package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/service"
)

// ShareHandler serves read-only shared sessions without authentication
type ShareHandler struct {
	sessions *service.SessionService
}

// NewShareHandler creates a new ShareHandler instance
func NewShareHandler(sessions *service.SessionService) *ShareHandler {
	return &ShareHandler{sessions: sessions}
}

// Resolve returns the session behind a share token. The owner's identity is
// not exposed; viewers get the prompt and the recipe set only.
func (h *ShareHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ID"})
		return
	}

	session, err := h.sessions.ResolveShare(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shared session not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":         session.Prompt,
		"recipes":        session.Recipes,
		"selected_index": session.SelectedIndex,
		"created_at":     session.CreatedAt,
	})
}
