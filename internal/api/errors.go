package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// respondError maps pipeline errors onto the HTTP surface. Provider quota
// statuses (429/402) pass through unchanged; everything unclassified is a 500.
func respondError(c *gin.Context, err error) {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var authErr *types.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var quotaErr *types.UpstreamQuotaError
	if errors.As(err, &quotaErr) {
		c.JSON(quotaErr.StatusCode, gin.H{"error": quotaErr.Message})
		return
	}

	var formatErr *types.GenerationFormatError
	if errors.As(err, &formatErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": formatErr.Message})
		return
	}

	var persistErr *types.PersistenceError
	if errors.As(err, &persistErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
