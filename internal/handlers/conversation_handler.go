package handlers

import (
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConversationHandler struct {
	conversationService *services.ConversationService
}

func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	conversationRepo := repository.NewConversationRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)

	conversationService := services.NewConversationService(conversationRepo, campaignRepo)
	return &ConversationHandler{conversationService: conversationService}
}

// ListConversations godoc
// @Summary List conversations
// @Description List conversations with a skip/limit window, newest first
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaign_id query string false "Filter by campaign"
// @Param team_id query string false "Filter by team"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Window size (default 50, max 500)"
// @Success 200 {object} models.ConversationListResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	response, err := h.conversationService.List(
		c.Query("campaign_id"),
		c.Query("team_id"),
		parseIntQuery(c, "skip", 0),
		parseIntQuery(c, "limit", 0),
	)
	if err != nil {
		respondServiceError(c, err, "Failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, response)
}

// IngestConversation godoc
// @Summary Ingest a conversation
// @Description Record one scored conversation pushed by the external pipeline. Authenticated with an API key.
// @Tags conversations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.IngestConversationRequest true "Conversation record"
// @Success 201 {object} models.ConversationResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ingest/conversations [post]
func (h *ConversationHandler) IngestConversation(c *gin.Context) {
	var req models.IngestConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.conversationService.Ingest(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to ingest conversation")
		return
	}

	c.JSON(http.StatusCreated, response)
}
