package handlers

import (
	"errors"
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/services/api_key"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IngestKeyStatusRequest toggles the ingest key without rotating it
type IngestKeyStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// APIKeyHandler manages the authenticated user's conversation-ingest key
type APIKeyHandler struct {
	apiKeyService *api_key.Service
}

func NewAPIKeyHandler(db *gorm.DB) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyService: api_key.NewService(db),
	}
}

// Rotate godoc
// @Summary Rotate the ingest key
// @Description Issue a fresh conversation-ingest key for the authenticated user. The previous key stops working immediately.
// @Tags api-key
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.APIKey
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/api-key/rotate [post]
func (h *APIKeyHandler) Rotate(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	apiKey, err := h.apiKeyService.Rotate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate ingest key"})
		return
	}

	c.JSON(http.StatusCreated, apiKey)
}

// Get godoc
// @Summary Get the ingest key
// @Description Return the authenticated user's conversation-ingest key
// @Tags api-key
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIKey
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/api-key [get]
func (h *APIKeyHandler) Get(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	apiKey, err := h.apiKeyService.GetForUser(userID)
	if err != nil {
		if errors.Is(err, api_key.ErrNoKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No ingest key provisioned"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ingest key"})
		return
	}

	c.JSON(http.StatusOK, apiKey)
}

// UpdateStatus godoc
// @Summary Pause or resume the ingest key
// @Description Toggle the conversation-ingest key without rotating it; paused keys reject all ingests
// @Tags api-key
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.IngestKeyStatusRequest true "Desired key status"
// @Success 200 {object} models.APIKey
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/api-key/status [put]
func (h *APIKeyHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req IngestKeyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	apiKey, err := h.apiKeyService.SetActive(userID, req.IsActive)
	if err != nil {
		if errors.Is(err, api_key.ErrNoKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No ingest key provisioned"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingest key"})
		return
	}

	c.JSON(http.StatusOK, apiKey)
}

// Revoke godoc
// @Summary Revoke the ingest key
// @Description Delete the conversation-ingest key. The pipeline loses access until a new key is rotated in.
// @Tags api-key
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/api-key [delete]
func (h *APIKeyHandler) Revoke(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.apiKeyService.Revoke(userID); err != nil {
		if errors.Is(err, api_key.ErrNoKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No ingest key provisioned"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke ingest key"})
		return
	}

	c.Status(http.StatusNoContent)
}
