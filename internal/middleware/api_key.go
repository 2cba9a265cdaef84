package middleware

import (
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/services/api_key"

	"github.com/gin-gonic/gin"
)

// IngestKeyAuth guards the /ingest surface. The conversation pipeline
// presents its key in the X-API-Key header; anything else is rejected
// outright, there is no fallback to bearer auth on this surface.
func IngestKeyAuth(apiKeys *api_key.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "X-API-Key header is required"})
			c.Abort()
			return
		}

		user, err := apiKeys.Validate(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ingest key"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("is_admin", user.IsAdmin)
		c.Set("auth_type", "api_key")

		c.Next()
	}
}
